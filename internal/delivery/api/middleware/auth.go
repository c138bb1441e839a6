package middleware

import (
	"strings"

	"donorhub/internal/delivery/api/response"
	"donorhub/internal/domain/entity"
	"donorhub/internal/domain/service"
	"donorhub/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "userID"
	contextKeyEmail  = "email"
	contextKeyRole   = "role"

	bearerPrefix = "Bearer "
)

// AuthMiddleware verifies bearer tokens and guards per-user routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid access token and exposes its claims to handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "Authorization header is missing")
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return response.Unauthorized(c, "TOKEN_MALFORMED", "Authorization header must use the Bearer scheme")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "Bearer token is empty")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			code, message := classifyTokenError(err)

			return response.Unauthorized(c, code, message)
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyEmail, claims.Email)
		c.Set(contextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireOwner only lets a caller act on the account named by the path parameter.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerID, ok := GetUserID(c)
			if !ok {
				return response.Unauthorized(c, "TOKEN_MISSING", "Authentication required")
			}

			targetID, err := uuid.Parse(c.Param(param))
			if err != nil {
				return response.BadRequest(c, "INVALID_USER_ID", "User id must be a UUID")
			}

			if targetID != callerID {
				return response.Forbidden(c, "FORBIDDEN", "You can only access your own account")
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return id, ok
}

// GetEmail returns the authenticated user's email.
func GetEmail(c echo.Context) string {
	email, _ := c.Get(contextKeyEmail).(string)

	return email
}

// GetRole returns the role bound into the access token.
func GetRole(c echo.Context) entity.Role {
	role, _ := c.Get(contextKeyRole).(entity.Role)

	return role
}

func classifyTokenError(err error) (code, message string) {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "TOKEN_EXPIRED", "Access token has expired"
	case errors.Is(err, service.ErrTokenMalformed):
		return "TOKEN_MALFORMED", "Access token is malformed"
	case errors.Is(err, service.ErrTokenSignatureInvalid):
		return "TOKEN_SIGNATURE_INVALID", "Access token signature is invalid"
	default:
		return "TOKEN_INVALID", "Access token is invalid"
	}
}
