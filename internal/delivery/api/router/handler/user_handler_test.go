package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"donorhub/internal/domain/entity"
	mockusecase "donorhub/internal/mocks/usecase"
	"donorhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func donorRegistration() map[string]any {
	return map[string]any{
		"email":      "ana@example.com",
		"password":   "Str0ng!pass",
		"name":       "Ana Souza",
		"city":       "Recife",
		"uf":         "PE",
		"zipcode":    "50000-000",
		"personType": "DONOR",
		"cpf":        "123.456.789-00",
		"bloodType":  "O-",
		"birthDate":  "1990-05-15",
	}
}

func sampleView() *entity.UserView {
	return &entity.UserView{
		ID:     uuid.New(),
		Email:  "ana@example.com",
		Name:   "Ana Souza",
		City:   "Recife",
		Region: "PE",
		Role:   entity.RoleDonor,
	}
}

func TestUserHandler_Register_Created(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	view := sampleView()

	uc.EXPECT().Register(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, input *usecase.RegisterInput) (usecase.Result[*entity.UserView], error) {
			assert.Equal(t, entity.RoleDonor, input.Role)
			assert.Equal(t, "50000-000", input.PostalCode)

			donor, ok := input.Profile.(usecase.DonorDetails)
			require.True(t, ok)
			assert.Equal(t, "12345678900", donor.TaxID)
			assert.Equal(t, entity.BloodTypeONegative, donor.BloodType)
			assert.Equal(t, time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC), donor.BirthDate)

			return usecase.Success(view), nil
		})

	c, rec := newJSONContext(t, http.MethodPost, "/users", donorRegistration())
	serve(c, NewUserHandler(uc, discardLogger).Register)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.Nil(t, env.Error)
	assert.Contains(t, string(env.Data), view.ID.String())
	assert.NotContains(t, string(env.Data), "password")
}

func TestUserHandler_Register_PartialSuccess(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	uc.EXPECT().Register(mock.Anything, mock.Anything).Return(usecase.PartialSuccess(sampleView()), nil)

	c, rec := newJSONContext(t, http.MethodPost, "/users", donorRegistration())
	serve(c, NewUserHandler(uc, discardLogger).Register)

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Nil(t, decode(t, rec).Error)
}

func TestUserHandler_Register_RoleMissingCarriesAccount(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	view := sampleView()
	view.Role = ""

	uc.EXPECT().Register(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, input *usecase.RegisterInput) (usecase.Result[*entity.UserView], error) {
			assert.Nil(t, input.Profile)

			return usecase.FailureWith(usecase.ReasonRoleMissing, view), nil
		})

	body := donorRegistration()
	delete(body, "personType")

	c, rec := newJSONContext(t, http.MethodPost, "/users", body)
	serve(c, NewUserHandler(uc, discardLogger).Register)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ROLE_MISSING", env.Error.Code)

	details, ok := env.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, view.ID.String(), details["id"])
}

func TestUserHandler_Register_Conflict(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	uc.EXPECT().Register(mock.Anything, mock.Anything).
		Return(usecase.Failure[*entity.UserView](usecase.ReasonAlreadyExists), nil)

	c, rec := newJSONContext(t, http.MethodPost, "/users", donorRegistration())
	serve(c, NewUserHandler(uc, discardLogger).Register)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", decode(t, rec).Error.Code)
}

func companyWithCNES(cnes string) func(map[string]any) {
	return func(b map[string]any) {
		b["personType"] = "COMPANY"
		b["cnpj"] = "12.345.678/0001-90"
		b["institutionName"] = "Hemocentro Recife"
		b["cnes"] = cnes
	}
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]any)
		field  string
	}{
		{"weak password", func(b map[string]any) { b["password"] = "password" }, "password"},
		{"bad email", func(b map[string]any) { b["email"] = "ana" }, "email"},
		{"lowercase uf", func(b map[string]any) { b["uf"] = "pe" }, "uf"},
		{"short cpf", func(b map[string]any) { b["cpf"] = "123.456" }, "cpf"},
		{"unknown blood type", func(b map[string]any) { b["bloodType"] = "C+" }, "bloodType"},
		{"bad birth date", func(b map[string]any) { b["birthDate"] = "15/05/1990" }, "birthDate"},
		{"unknown person type", func(b map[string]any) { b["personType"] = "ADMIN" }, "personType"},
		{"company without cnpj", func(b map[string]any) { b["personType"] = "COMPANY" }, "cnpj"},
		{"signed cnes", companyWithCNES("+123456"), "cnes"},
		{"negative cnes", companyWithCNES("-123456"), "cnes"},
		{"decimal cnes", companyWithCNES("1234.56"), "cnes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockusecase.NewMockUserUsecase(t)

			body := donorRegistration()
			tt.mutate(body)

			c, rec := newJSONContext(t, http.MethodPost, "/users", body)
			serve(c, NewUserHandler(uc, discardLogger).Register)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
			assert.Contains(t, env.Error.Details, tt.field+":")
		})
	}
}

func TestUserHandler_Register_MalformedBody(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)
	serve(c, NewUserHandler(uc, discardLogger).Register)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST_BODY", decode(t, rec).Error.Code)
}

func TestUserHandler_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		result     usecase.Result[*usecase.AuthenticateOutput]
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			result:     usecase.Success(&usecase.AuthenticateOutput{User: sampleView(), Token: "signed"}),
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown email",
			result:     usecase.Failure[*usecase.AuthenticateOutput](usecase.ReasonNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "USER_NOT_FOUND",
		},
		{
			name:       "wrong password",
			result:     usecase.Failure[*usecase.AuthenticateOutput](usecase.ReasonInvalidCredential),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockusecase.NewMockUserUsecase(t)
			uc.EXPECT().Authenticate(mock.Anything, &usecase.AuthenticateInput{
				Email:    "ana@example.com",
				Password: "Str0ng!pass",
			}).Return(tt.result, nil)

			c, rec := newJSONContext(t, http.MethodPost, "/users/authenticate", map[string]string{
				"email":    "ana@example.com",
				"password": "Str0ng!pass",
			})
			serve(c, NewUserHandler(uc, discardLogger).Authenticate)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			if tt.wantCode == "" {
				var out usecase.AuthenticateOutput
				require.NoError(t, json.Unmarshal(env.Data, &out))
				assert.Equal(t, "signed", out.Token)

				return
			}
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestUserHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	userID := uuid.New()

	uc.EXPECT().ChangePassword(mock.Anything, &usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: "Old!pass1",
		NewPassword: "N3w!passw0rd",
	}).Return(usecase.Failure[*entity.UserView](usecase.ReasonInvalidCredential), nil)

	c, rec := newJSONContext(t, http.MethodPut, "/users/change-password/"+userID.String(), map[string]string{
		"old": "Old!pass1",
		"new": "N3w!passw0rd",
	})
	serve(withUserID(c, userID.String()), NewUserHandler(uc, discardLogger).ChangePassword)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_OLD_PASSWORD", decode(t, rec).Error.Code)
}

func TestUserHandler_ChangePassword_RejectsWeakNewPassword(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	userID := uuid.New()

	c, rec := newJSONContext(t, http.MethodPut, "/users/change-password/"+userID.String(), map[string]string{
		"old": "Old!pass1",
		"new": "short",
	})
	serve(withUserID(c, userID.String()), NewUserHandler(uc, discardLogger).ChangePassword)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, rec).Error.Code)
}

func TestUserHandler_UpdateUser_OnlySentFields(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	userID := uuid.New()

	uc.EXPECT().UpdateUser(mock.Anything, userID, mock.Anything).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, fields entity.UserFields) (usecase.Result[*entity.UserView], error) {
			require.NotNil(t, fields.City)
			assert.Equal(t, "Olinda", *fields.City)
			assert.Nil(t, fields.Name)
			assert.Nil(t, fields.Region)
			assert.Nil(t, fields.PostalCode)

			return usecase.Success(sampleView()), nil
		})

	c, rec := newJSONContext(t, http.MethodPut, "/users/"+userID.String(), map[string]string{"city": "Olinda"})
	serve(withUserID(c, userID.String()), NewUserHandler(uc, discardLogger).UpdateUser)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_GetUser(t *testing.T) {
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		uc := mockusecase.NewMockUserUsecase(t)
		view := sampleView()
		view.ID = userID
		uc.EXPECT().GetUser(mock.Anything, userID).Return(usecase.Success(view), nil)

		c, rec := newJSONContext(t, http.MethodGet, "/users/"+userID.String(), nil)
		serve(withUserID(c, userID.String()), NewUserHandler(uc, discardLogger).GetUser)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decode(t, rec).Data), `"personType":"DONOR"`)
	})

	t.Run("not found", func(t *testing.T) {
		uc := mockusecase.NewMockUserUsecase(t)
		uc.EXPECT().GetUser(mock.Anything, userID).Return(usecase.Failure[*entity.UserView](usecase.ReasonNotFound), nil)

		c, rec := newJSONContext(t, http.MethodGet, "/users/"+userID.String(), nil)
		serve(withUserID(c, userID.String()), NewUserHandler(uc, discardLogger).GetUser)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		uc := mockusecase.NewMockUserUsecase(t)

		c, rec := newJSONContext(t, http.MethodGet, "/users/abc", nil)
		serve(withUserID(c, "abc"), NewUserHandler(uc, discardLogger).GetUser)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_USER_ID", decode(t, rec).Error.Code)
	})
}

func TestUserHandler_UsecaseErrorIsInternal(t *testing.T) {
	uc := mockusecase.NewMockUserUsecase(t)
	uc.EXPECT().Register(mock.Anything, mock.Anything).
		Return(usecase.Result[*entity.UserView]{}, assert.AnError)

	c, rec := newJSONContext(t, http.MethodPost, "/users", donorRegistration())
	serve(c, NewUserHandler(uc, discardLogger).Register)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.Nil(t, env.Error.Details)
}
