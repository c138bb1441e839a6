package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"donorhub/config"
	deliverycontext "donorhub/internal/delivery/context"
	"donorhub/internal/domain/entity"
	"donorhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserMapper_RoundTripKeepsOptionalColumnsNull(t *testing.T) {
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: "salt:hash",
		Name:         "Ana",
		City:         "Recife",
		Region:       "PE",
	}

	userM := fromUserDomain(user)
	assert.Nil(t, userM.PostalCode)
	assert.Nil(t, userM.Role)
	assert.Nil(t, userM.AvatarPath)

	back := toUserDomain(userM)
	assert.Equal(t, user, back)
}

func TestUserMapper_CarriesRoleAndAvatar(t *testing.T) {
	role := "COMPANY"
	avatar := "/uploads/avatar-1.png"
	back := toUserDomain(&model.UserModel{Email: "x@y.z", Role: &role, AvatarPath: &avatar})

	assert.Equal(t, entity.RoleCompany, back.Role)
	assert.Equal(t, avatar, back.AvatarPath)
	assert.Empty(t, back.PostalCode)
}

func TestProfileMappers(t *testing.T) {
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	donor := &entity.DonorProfile{ID: uuid.New(), UserID: uuid.New(), TaxID: "12345678901", BloodType: entity.BloodTypeOPositive, BirthDate: birth}
	assert.Equal(t, donor, toDonorDomain(fromDonorDomain(donor)))

	company := &entity.CompanyProfile{ID: uuid.New(), UserID: uuid.New(), TaxID: "12345678000199", InstitutionName: "Hemo", FacilityCode: "1234567"}
	assert.Equal(t, company, toCompanyDomain(fromCompanyDomain(company)))
}

func TestConstraintErrorClassification(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "insert")))
	assert.True(t, isUniqueConstraintViolation(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))

	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(gorm.ErrDuplicatedKey))

	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "email" violates not-null constraint`)))
	assert.False(t, isNotNullConstraintViolation(errors.New("timeout")))
}

func TestGormSlogLogger_TraceAttachesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = true

	l := newGormSlogLogger(base, cfg)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GORM query", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "SELECT 1", entry["sql"])
}

func TestGormSlogLogger_SkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	l := newGormSlogLogger(base, &config.Config{}).LogMode(logger.Error)
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	assert.Contains(t, buf.String(), "GORM query failed")
}

func TestGormSlogLogger_UniqueViolationIsAWarning(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	l := newGormSlogLogger(base, &config.Config{})
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "INSERT INTO users", 0 }, gorm.ErrDuplicatedKey)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "GORM unique violation", entry["msg"])
}
