// Package handler contains the HTTP handlers for the account API.
package handler

import (
	"log/slog"
	"net/http"

	"donorhub/internal/delivery/api/response"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/errors"
	"donorhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler holds dependencies for account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles POST /users.
// A created account whose profile could not be stored answers 206 with the account view.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err)
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	switch {
	case result.IsSuccess():
		return response.Created(c, result.Value)
	case result.IsPartial():
		return response.Success(c, http.StatusPartialContent, result.Value)
	case result.Reason == usecase.ReasonRoleMissing:
		// The account exists even though no profile could be attached
		return response.Error(c, http.StatusBadRequest,
			domainerrors.ErrRoleMissing.ErrorCode(), domainerrors.ErrRoleMissing.Message(), result.Value)
	default:
		return response.FromAppError(c, failureError(result.Reason))
	}
}

// Authenticate handles POST /users/authenticate.
func (h *UserHandler) Authenticate(c echo.Context) error {
	var req AuthenticateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.Authenticate(c.Request().Context(), &usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if result.IsFailure() {
		return response.FromAppError(c, failureError(result.Reason))
	}

	return response.OK(c, result.Value)
}

// GetUser handles GET /users/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, ok := pathUserID(c)
	if !ok {
		return invalidUserID(c)
	}

	result, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}
	if result.IsFailure() {
		return response.FromAppError(c, failureError(result.Reason))
	}

	return response.OK(c, result.Value)
}

// UpdateUser handles PUT /users/:id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, ok := pathUserID(c)
	if !ok {
		return invalidUserID(c)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.UpdateUser(c.Request().Context(), userID, req.toFields())
	if err != nil {
		return errors.WithStack(err)
	}
	if result.IsFailure() {
		return response.FromAppError(c, failureError(result.Reason))
	}

	return response.OK(c, result.Value)
}

// ChangePassword handles PUT /users/change-password/:id.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := pathUserID(c)
	if !ok {
		return invalidUserID(c)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.Old,
		NewPassword: req.New,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if result.IsFailure() {
		if result.Reason == usecase.ReasonInvalidCredential {
			return response.FromAppError(c, domainerrors.ErrInvalidOldPassword)
		}

		return response.FromAppError(c, failureError(result.Reason))
	}

	return response.OK(c, result.Value)
}

// failureError maps a failed Result onto the predefined error answered for it.
// Handlers override the mapping where an endpoint needs a more specific code.
func failureError(reason usecase.Reason) domainerrors.AppError {
	switch reason {
	case usecase.ReasonAlreadyExists:
		return domainerrors.ErrUserAlreadyExists
	case usecase.ReasonNotFound:
		return domainerrors.ErrUserNotFound
	case usecase.ReasonInvalidCredential:
		return domainerrors.ErrInvalidCredentials
	case usecase.ReasonRoleMissing:
		return domainerrors.ErrRoleMissing
	default:
		return domainerrors.ErrInternalError
	}
}

func pathUserID(c echo.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("id"))

	return userID, err == nil
}

func invalidUserID(c echo.Context) error {
	return response.BadRequest(c, "INVALID_USER_ID", "User id must be a UUID")
}
