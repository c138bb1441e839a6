// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"donorhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the persistence operations for the Identity record.
// Email uniqueness is enforced by the store, not by callers.
type UserRepository interface {
	// Create persists a new user and fills in its ID and timestamps.
	// It returns domainerrors.ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePassword replaces the credential record and returns the updated user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*entity.User, error)

	// UpdateAvatar replaces the avatar path and returns the updated user.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarPath string) (*entity.User, error)

	// Update applies a partial update of the non-credential fields and returns the updated user.
	Update(ctx context.Context, id uuid.UUID, fields entity.UserFields) (*entity.User, error)
}
