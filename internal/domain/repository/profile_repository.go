package repository

import (
	"context"
	"errors"

	"donorhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a donor or company profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// DonorRepository persists donor profiles.
type DonorRepository interface {
	Create(ctx context.Context, profile *entity.DonorProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DonorProfile, error)
	FindByOwnerID(ctx context.Context, userID uuid.UUID) (*entity.DonorProfile, error)
	Update(ctx context.Context, profile *entity.DonorProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository persists company profiles.
// Create and Update return domainerrors.ErrProfileAlreadyExists on a tax id collision.
type CompanyRepository interface {
	Create(ctx context.Context, profile *entity.CompanyProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CompanyProfile, error)
	FindByOwnerID(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error)
	Update(ctx context.Context, profile *entity.CompanyProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
