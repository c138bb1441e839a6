// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"donorhub/internal/domain/entity"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/repository"
	"donorhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a repository.UserRepository backed by db.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID reads from the primary: the id is usually one returned by a
// registration a moment ago, which a lagging replica may not have yet.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail reads from the primary so that a login right after registration
// never misses the new row on a lagging replica.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*entity.User, error) {
	return repo.updateColumns(ctx, id, map[string]any{"password": passwordHash})
}

func (repo *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarPath string) (*entity.User, error) {
	return repo.updateColumns(ctx, id, map[string]any{"avatar_path": avatarPath})
}

func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, fields entity.UserFields) (*entity.User, error) {
	columns := make(map[string]any, 4)
	if fields.Name != nil {
		columns["name"] = *fields.Name
	}
	if fields.City != nil {
		columns["city"] = *fields.City
	}
	if fields.Region != nil {
		columns["uf"] = *fields.Region
	}
	if fields.PostalCode != nil {
		columns["zipcode"] = nullableString(*fields.PostalCode)
	}

	if len(columns) == 0 {
		return repo.FindByID(ctx, id)
	}

	return repo.updateColumns(ctx, id, columns)
}

// updateColumns applies columns to one row and reloads it from the primary.
func (repo *userRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) (*entity.User, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		City:         data.City,
		Region:       data.Region,
		PostalCode:   derefString(data.PostalCode),
		Role:         entity.Role(derefString(data.Role)),
		AvatarPath:   derefString(data.AvatarPath),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		City:         data.City,
		Region:       data.Region,
		PostalCode:   nullableString(data.PostalCode),
		Role:         nullableString(string(data.Role)),
		AvatarPath:   nullableString(data.AvatarPath),
	}
}

func nullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
