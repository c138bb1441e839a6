package auth

import (
	"time"

	"donorhub/config"
	"donorhub/internal/domain/entity"
	"donorhub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accessClaims is the JWT payload: the subject is the user id.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Signing key, injected from configuration.
	ttl    time.Duration    // Lifetime of issued tokens.
	now    func() time.Time // Clock, replaceable in tests.
}

// NewJWTService is the constructor for jwtService.
// The secret comes from configuration only; it is never read from the environment here.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the claims.
func (s *jwtService) Issue(claims service.TokenClaims) (string, error) {
	issuedAt := s.now()
	payload := accessClaims{
		Email: claims.Email,
		Role:  claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses the token and maps parser failures onto the service.ErrToken* values.
func (s *jwtService) Verify(tokenString string) (*service.TokenClaims, error) {
	var payload accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &payload, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	userID, err := uuid.Parse(payload.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "subject is not a user id")
	}
	if payload.Email == "" {
		return nil, errors.Wrap(service.ErrTokenInvalid, "token payload is incomplete")
	}
	// Accounts registered without a person type hold tokens with an empty role.
	if role := entity.Role(payload.Role); role != "" && !role.IsValid() {
		return nil, errors.Wrapf(service.ErrTokenInvalid, "unknown role %q", payload.Role)
	}

	claims := &service.TokenClaims{
		UserID: userID,
		Email:  payload.Email,
		Role:   entity.Role(payload.Role),
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}

	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Wrap(service.ErrTokenMalformed, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Wrap(service.ErrTokenSignatureInvalid, err.Error())
	default:
		return errors.Wrap(service.ErrTokenInvalid, err.Error())
	}
}
