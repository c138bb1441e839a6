package service

import (
	"errors"
	"time"

	"donorhub/internal/domain/entity"

	"github.com/google/uuid"
)

// Token verification failures. The transport layer maps each to its own response.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenInvalid          = errors.New("token invalid")
)

// TokenClaims is the identity bound into an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      entity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// Issue signs a token for the claims. IssuedAt and ExpiresAt are set by the service.
	Issue(claims TokenClaims) (string, error)

	// Verify parses and validates a token, returning one of the ErrToken* errors on failure.
	Verify(token string) (*TokenClaims, error)
}
