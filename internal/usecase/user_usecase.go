// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"donorhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ProfileDetails is the role-specific payload of a registration or profile save.
// Only DonorDetails and CompanyDetails implement it.
type ProfileDetails interface {
	// Role is the role this payload belongs to.
	Role() entity.Role
	isProfileDetails()
}

// DonorDetails carries the fields of a donor profile.
type DonorDetails struct {
	TaxID     string
	BloodType entity.BloodType
	BirthDate time.Time
}

func (DonorDetails) Role() entity.Role { return entity.RoleDonor }
func (DonorDetails) isProfileDetails() {}

// CompanyDetails carries the fields of a company profile.
type CompanyDetails struct {
	TaxID           string
	InstitutionName string
	FacilityCode    string
}

func (CompanyDetails) Role() entity.Role { return entity.RoleCompany }
func (CompanyDetails) isProfileDetails() {}

// RegisterInput defines the data required to register a donor or a company.
// Profile may be nil; its kind must match Role.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	City       string
	Region     string
	PostalCode string
	Role       entity.Role
	Profile    ProfileDetails
}

// AuthenticateInput defines the credentials presented at login.
type AuthenticateInput struct {
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to replace a password.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateAvatarInput records an already stored avatar on the Identity.
type UpdateAvatarInput struct {
	UserID     uuid.UUID
	AvatarPath string
}

// --- Output DTOs ---

// AuthenticateOutput is returned on a successful login.
type AuthenticateOutput struct {
	User  *entity.UserView `json:"user"`
	Token string           `json:"token"`
}

// UserUsecase defines the account operations. Every returned user is a
// sanitized view; credential records never leave this layer.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (Result[*entity.UserView], error)
	Authenticate(ctx context.Context, input *AuthenticateInput) (Result[*AuthenticateOutput], error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) (Result[*entity.UserView], error)
	UpdateAvatar(ctx context.Context, input *UpdateAvatarInput) (Result[*entity.UserView], error)
	GetUser(ctx context.Context, userID uuid.UUID) (Result[*entity.UserView], error)
	UpdateUser(ctx context.Context, userID uuid.UUID, fields entity.UserFields) (Result[*entity.UserView], error)
}
