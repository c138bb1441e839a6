package postgres

import (
	"context"

	"donorhub/internal/domain/entity"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/repository"
	"donorhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type donorRepository struct {
	db *gorm.DB
}

// NewDonorRepository returns a repository.DonorRepository backed by db.
func NewDonorRepository(db *gorm.DB) repository.DonorRepository {
	return &donorRepository{db: db}
}

func (repo *donorRepository) Create(ctx context.Context, profile *entity.DonorProfile) error {
	profileM := fromDonorDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProfileAlreadyExists.WrapMessage("user already has a donor profile")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProfileCreationFailed.WrapMessage("owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create donor profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *donorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DonorProfile, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *donorRepository) FindByOwnerID(ctx context.Context, userID uuid.UUID) (*entity.DonorProfile, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *donorRepository) findOne(ctx context.Context, query string, arg any) (*entity.DonorProfile, error) {
	var profileM model.DonorProfileModel
	if err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Where(query, arg).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find donor profile")
	}

	return toDonorDomain(&profileM), nil
}

func (repo *donorRepository) Update(ctx context.Context, profile *entity.DonorProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DonorProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"tax_id":     profile.TaxID,
			"blood_type": string(profile.BloodType),
			"birth_date": profile.BirthDate,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update donor profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

func (repo *donorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DonorProfileModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete donor profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

func toDonorDomain(data *model.DonorProfileModel) *entity.DonorProfile {
	return &entity.DonorProfile{
		ID:        data.ID,
		UserID:    data.UserID,
		TaxID:     data.TaxID,
		BloodType: entity.BloodType(data.BloodType),
		BirthDate: data.BirthDate,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromDonorDomain(data *entity.DonorProfile) *model.DonorProfileModel {
	return &model.DonorProfileModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TaxID:     data.TaxID,
		BloodType: string(data.BloodType),
		BirthDate: data.BirthDate,
	}
}
