package handler

import (
	"context"
	"net/http"
	"testing"

	"donorhub/internal/domain/entity"
	mockusecase "donorhub/internal/mocks/usecase"
	"donorhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func companyProfileBody() map[string]string {
	return map[string]string{
		"personType":      "COMPANY",
		"cnpj":            "12.345.678/0001-90",
		"institutionName": "Hemocentro Recife",
		"cnes":            "1234567",
	}
}

func TestProfileHandler_SaveProfile_Company(t *testing.T) {
	uc := mockusecase.NewMockProfileUsecase(t)
	userID := uuid.New()

	uc.EXPECT().SaveProfile(mock.Anything, userID, mock.Anything).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, details usecase.ProfileDetails) (usecase.Result[*entity.UserView], error) {
			company, ok := details.(usecase.CompanyDetails)
			require.True(t, ok)
			assert.Equal(t, "12345678000190", company.TaxID)
			assert.Equal(t, "1234567", company.FacilityCode)

			return usecase.Success(sampleView()), nil
		})

	c, rec := newJSONContext(t, http.MethodPut, "/users/"+userID.String()+"/profile", companyProfileBody())
	serve(withUserID(c, userID.String()), NewProfileHandler(uc, discardLogger).SaveProfile)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_SaveProfile_Failures(t *testing.T) {
	tests := []struct {
		name       string
		reason     usecase.Reason
		wantStatus int
		wantCode   string
	}{
		{"role mismatch", usecase.ReasonRoleMissing, http.StatusBadRequest, "ROLE_MISMATCH"},
		{"tax id taken", usecase.ReasonAlreadyExists, http.StatusConflict, "PROFILE_ALREADY_EXISTS"},
		{"unknown user", usecase.ReasonNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockusecase.NewMockProfileUsecase(t)
			userID := uuid.New()
			uc.EXPECT().SaveProfile(mock.Anything, userID, mock.Anything).
				Return(usecase.Failure[*entity.UserView](tt.reason), nil)

			c, rec := newJSONContext(t, http.MethodPut, "/users/"+userID.String()+"/profile", companyProfileBody())
			serve(withUserID(c, userID.String()), NewProfileHandler(uc, discardLogger).SaveProfile)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Error.Code)
		})
	}
}

func TestProfileHandler_SaveProfile_ValidatesOnlyChosenProfile(t *testing.T) {
	uc := mockusecase.NewMockProfileUsecase(t)
	userID := uuid.New()

	// A donor body must not be rejected for missing company fields, and vice versa.
	uc.EXPECT().SaveProfile(mock.Anything, userID, usecase.DonorDetails{
		TaxID:     "12345678900",
		BloodType: entity.BloodTypeABPositive,
		BirthDate: mustDate(t, "1985-01-31"),
	}).Return(usecase.Success(sampleView()), nil)

	c, rec := newJSONContext(t, http.MethodPut, "/users/"+userID.String()+"/profile", map[string]string{
		"personType": "DONOR",
		"cpf":        "123.456.789-00",
		"bloodType":  "AB+",
		"birthDate":  "1985-01-31",
	})
	serve(withUserID(c, userID.String()), NewProfileHandler(uc, discardLogger).SaveProfile)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_SaveProfile_InvalidCNES(t *testing.T) {
	for _, cnes := range []string{"12345", "+123456", "-123456", "1234.56", "12345678"} {
		t.Run(cnes, func(t *testing.T) {
			uc := mockusecase.NewMockProfileUsecase(t)
			userID := uuid.New()

			body := companyProfileBody()
			body["cnes"] = cnes

			c, rec := newJSONContext(t, http.MethodPut, "/users/"+userID.String()+"/profile", body)
			serve(withUserID(c, userID.String()), NewProfileHandler(uc, discardLogger).SaveProfile)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
			assert.Contains(t, env.Error.Details, "cnes:")
		})
	}
}
