package auth

import (
	"strings"
	"testing"
	"time"

	"donorhub/config"
	"donorhub/internal/domain/entity"
	"donorhub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T, secret string, ttl time.Duration) *jwtService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl}}
	cfg.SecretKey.Access = secret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	userID := uuid.New()
	token, err := svc.Issue(service.TokenClaims{UserID: userID, Email: "d@x.com", Role: entity.RoleDonor})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "d@x.com", claims.Email)
	assert.Equal(t, entity.RoleDonor, claims.Role)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.(*jwtService).ttl)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(service.TokenClaims{UserID: uuid.New(), Email: "d@x.com", Role: entity.RoleDonor})
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	claims, err := svc.Verify("clearly-not-a-jwt-token-format")
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(t, "another_secret_entirely_for_this_test", time.Hour)
	verifier := newTestJWTService(t, testSecret, time.Hour)

	token, err := issuer.Issue(service.TokenClaims{UserID: uuid.New(), Email: "d@x.com", Role: entity.RoleCompany})
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrTokenSignatureInvalid))
}

func TestJWTService_TamperedPayload(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	token, err := svc.Issue(service.TokenClaims{UserID: uuid.New(), Email: "d@x.com", Role: entity.RoleDonor})
	require.NoError(t, err)

	other, err := svc.Issue(service.TokenClaims{UserID: uuid.New(), Email: "e@x.com", Role: entity.RoleCompany})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(forged)
	assert.True(t, errors.Is(err, service.ErrTokenSignatureInvalid))
}

func TestJWTService_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	payload := accessClaims{
		Email: "d@x.com",
		Role:  entity.RoleDonor.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, payload).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, service.ErrTokenSignatureInvalid))
}

func TestJWTService_IncompletePayload(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	payload := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, service.ErrTokenInvalid))
}

func TestJWTService_MissingExpiration(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	payload := accessClaims{
		Email: "d@x.com",
		Role:  entity.RoleDonor.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, service.ErrTokenInvalid))
}

func TestJWTService_RoleClaim(t *testing.T) {
	svc := newTestJWTService(t, testSecret, time.Hour)

	t.Run("empty role verifies", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.Issue(service.TokenClaims{UserID: userID, Email: "r@x.com"})
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Empty(t, claims.Role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		payload := accessClaims{
			Email: "d@x.com",
			Role:  "ADMIN",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.True(t, errors.Is(err, service.ErrTokenInvalid))
	})
}
