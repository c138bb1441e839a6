package handler

import (
	"log/slog"
	"time"

	"donorhub/internal/delivery/api/response"
	"donorhub/internal/domain/entity"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/errors"
	"donorhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the role profile of an account.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// SaveProfile handles PUT /users/:id/profile.
// It completes a partially registered account or edits an existing profile.
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	userID, ok := pathUserID(c)
	if !ok {
		return invalidUserID(c)
	}

	var req SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	var details usecase.ProfileDetails
	switch entity.Role(req.PersonType) {
	case entity.RoleDonor:
		donor := req.SaveDonorProfileRequest
		donor.CPF = digitsOnly(donor.CPF)
		if err := c.Validate(&donor); err != nil {
			return errors.WithStack(err)
		}
		birthDate, _ := time.Parse(birthDateLayout, donor.BirthDate)
		details = usecase.DonorDetails{
			TaxID:     donor.CPF,
			BloodType: entity.BloodType(donor.BloodType),
			BirthDate: birthDate,
		}
	case entity.RoleCompany:
		company := req.SaveCompanyProfileRequest
		company.CNPJ = digitsOnly(company.CNPJ)
		if err := c.Validate(&company); err != nil {
			return errors.WithStack(err)
		}
		details = usecase.CompanyDetails{
			TaxID:           company.CNPJ,
			InstitutionName: company.InstitutionName,
			FacilityCode:    company.CNES,
		}
	}

	result, err := h.uc.SaveProfile(c.Request().Context(), userID, details)
	if err != nil {
		return errors.WithStack(err)
	}

	if result.IsFailure() {
		switch result.Reason {
		case usecase.ReasonRoleMissing:
			return response.FromAppError(c, domainerrors.ErrProfileRoleMismatch)
		case usecase.ReasonAlreadyExists:
			return response.FromAppError(c, domainerrors.ErrProfileAlreadyExists)
		default:
			return response.FromAppError(c, failureError(result.Reason))
		}
	}

	h.logger.DebugContext(c.Request().Context(), "Profile saved",
		slog.String("user_id", userID.String()),
		slog.String("person_type", req.PersonType),
	)

	return response.OK(c, result.Value)
}
