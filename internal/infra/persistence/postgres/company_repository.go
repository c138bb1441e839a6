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

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository returns a repository.CompanyRepository backed by db.
func NewCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

// Create maps both unique indexes (owner and tax id) to ErrProfileAlreadyExists.
func (repo *companyRepository) Create(ctx context.Context, profile *entity.CompanyProfile) error {
	profileM := fromCompanyDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProfileAlreadyExists.WrapMessage("tax id already registered")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProfileCreationFailed.WrapMessage("owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create company profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CompanyProfile, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *companyRepository) FindByOwnerID(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *companyRepository) findOne(ctx context.Context, query string, arg any) (*entity.CompanyProfile, error) {
	var profileM model.CompanyProfileModel
	if err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Where(query, arg).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find company profile")
	}

	return toCompanyDomain(&profileM), nil
}

func (repo *companyRepository) Update(ctx context.Context, profile *entity.CompanyProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CompanyProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"tax_id":           profile.TaxID,
			"institution_name": profile.InstitutionName,
			"facility_code":    profile.FacilityCode,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrProfileAlreadyExists.WrapMessage("tax id already registered")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update company profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

func (repo *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CompanyProfileModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete company profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

func toCompanyDomain(data *model.CompanyProfileModel) *entity.CompanyProfile {
	return &entity.CompanyProfile{
		ID:              data.ID,
		UserID:          data.UserID,
		TaxID:           data.TaxID,
		InstitutionName: data.InstitutionName,
		FacilityCode:    data.FacilityCode,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromCompanyDomain(data *entity.CompanyProfile) *model.CompanyProfileModel {
	return &model.CompanyProfileModel{
		ID:              data.ID,
		UserID:          data.UserID,
		TaxID:           data.TaxID,
		InstitutionName: data.InstitutionName,
		FacilityCode:    data.FacilityCode,
	}
}
