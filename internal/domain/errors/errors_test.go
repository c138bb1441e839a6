package errors

import (
	"net/http"
	"testing"

	"donorhub/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	detailed := ErrAvatarTooLarge.WithDetails("limit is 5.0 MB")

	assert.True(t, errors.Is(detailed, ErrAvatarTooLarge))
	assert.False(t, errors.Is(detailed, ErrAvatarTypeNotAllowed))
	assert.Equal(t, "limit is 5.0 MB", detailed.Details())
	assert.Equal(t, http.StatusRequestEntityTooLarge, detailed.HTTPCode())
	assert.Contains(t, detailed.Error(), "limit is 5.0 MB")
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := ErrUserAlreadyExists.WrapMessage("email already exists")

	var appErr AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.ErrorCode())
	assert.True(t, errors.Is(wrapped, ErrUserAlreadyExists))
}

func TestDatabaseExecuteError_UnwrapsDriverError(t *testing.T) {
	driverErr := errors.New("connection refused")
	err := NewDatabaseExecuteError(driverErr, "failed to create user")

	assert.True(t, errors.Is(err, driverErr))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "failed to create user", err.Details())
}
