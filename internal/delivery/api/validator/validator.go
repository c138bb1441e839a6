// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"donorhub/config"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/errors"

	"github.com/go-playground/validator/v10"
)

// TagPassword is the struct tag checked against the configured password strength rule.
const TagPassword = "password"

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
	strength *config.PasswordStrengthConfig
}

// New builds the request validator. A nil strength falls back to config.DefaultPasswordStrength.
func New(strength *config.PasswordStrengthConfig) *CustomValidator {
	if strength == nil {
		strength = config.DefaultPasswordStrength()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	cv := &CustomValidator{validate: v, strength: strength}
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(TagPassword, cv.validatePassword)

	return cv
}

// Validate runs struct validation and converts failures into ErrValidationFailed with per-field details.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate request")
	}

	return domainerrors.ErrValidationFailed.WithDetails(formatDetails(verrs, cv.strength))
}

func (cv *CustomValidator) validatePassword(fl validator.FieldLevel) bool {
	return CheckPasswordStrength(fl.Field().String(), cv.strength)
}

// CheckPasswordStrength reports whether password satisfies the rule.
func CheckPasswordStrength(password string, rule *config.PasswordStrengthConfig) bool {
	length := len([]rune(password))
	if rule.MinLength > 0 && length < rule.MinLength {
		return false
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	return (!rule.RequireUppercase || upper) &&
		(!rule.RequireLowercase || lower) &&
		(!rule.RequireNumbers || digit) &&
		(!rule.RequireSpecial || special)
}

func formatDetails(verrs validator.ValidationErrors, strength *config.PasswordStrengthConfig) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldPath(fe)+": "+fieldMessage(fe, strength))
	}
	sort.Strings(parts)

	return strings.Join(parts, "; ")
}

// fieldPath drops the root struct name from the namespace, so "RegisterRequest.donor.cpf" becomes "donor.cpf".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}

	return fe.Field()
}

func fieldMessage(fe validator.FieldError, strength *config.PasswordStrengthConfig) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "len":
		return "must be exactly " + param + " characters long"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "number", "numeric":
		return "must contain digits only"
	case "alpha":
		return "must contain letters only"
	case "uppercase":
		return "must be in uppercase"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		return "must match the date format " + param
	case TagPassword:
		return describePasswordRule(strength)
	default:
		if param != "" {
			return "failed '" + fe.Tag() + "=" + param + "' check"
		}

		return "failed '" + fe.Tag() + "' check"
	}
}

func describePasswordRule(rule *config.PasswordStrengthConfig) string {
	var needs []string
	if rule.RequireUppercase {
		needs = append(needs, "an uppercase letter")
	}
	if rule.RequireLowercase {
		needs = append(needs, "a lowercase letter")
	}
	if rule.RequireNumbers {
		needs = append(needs, "a digit")
	}
	if rule.RequireSpecial {
		needs = append(needs, "a special character")
	}

	msg := "must be at least " + strconv.Itoa(rule.MinLength) + " characters"
	if rule.MaxLength > 0 {
		msg = "must be between " + strconv.Itoa(rule.MinLength) + " and " + strconv.Itoa(rule.MaxLength) + " characters"
	}
	if len(needs) > 0 {
		msg += " and contain " + strings.Join(needs, ", ")
	}

	return msg
}
