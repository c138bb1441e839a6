package validator

import (
	"testing"

	"donorhub/config"
	domainerrors "donorhub/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Nested   struct {
		Code string `json:"code" validate:"required,number,len=7"`
	} `json:"nested"`
}

func TestValidate_OK(t *testing.T) {
	v := New(nil)

	req := signupRequest{Email: "ana@example.com", Password: "Str0ng!pass"}
	req.Nested.Code = "1234567"

	assert.NoError(t, v.Validate(&req))
}

func TestValidate_ReportsFieldsByJSONName(t *testing.T) {
	v := New(nil)

	req := signupRequest{Email: "not-an-email", Password: "weak"}
	req.Nested.Code = "12a"

	err := v.Validate(&req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	details := appErr.Details()
	assert.Contains(t, details, "email: must be a valid email")
	assert.Contains(t, details, "password: must be between 8 and 128 characters")
	assert.Contains(t, details, "nested.code: must contain digits only")
}

func TestValidate_DigitCodesRejectSignsAndDecimals(t *testing.T) {
	v := New(nil)

	for _, code := range []string{"+123456", "-123456", "1234.56", "12 4567"} {
		req := signupRequest{Email: "ana@example.com", Password: "Str0ng!pass"}
		req.Nested.Code = code

		err := v.Validate(&req)
		require.Error(t, err, code)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), code)
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	rule := config.DefaultPasswordStrength()

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "Str0ng!pass", true},
		{"too short", "S0!a", false},
		{"no upper", "str0ng!pass", false},
		{"no lower", "STR0NG!PASS", false},
		{"no digit", "Strong!pass", false},
		{"no special", "Str0ngpass", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordStrength(tt.password, rule))
		})
	}
}

func TestCheckPasswordStrength_RelaxedRule(t *testing.T) {
	rule := &config.PasswordStrengthConfig{MinLength: 4}

	assert.True(t, CheckPasswordStrength("abcd", rule))
	assert.False(t, CheckPasswordStrength("abc", rule))
}
