package usecase

import (
	"context"

	"donorhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase completes or edits the role profile of an existing Identity.
type ProfileUsecase interface {
	// SaveProfile creates the profile matching the Identity's role, or updates it in place.
	// It fails with ReasonRoleMissing when details do not match the Identity's role.
	SaveProfile(ctx context.Context, userID uuid.UUID, details ProfileDetails) (Result[*entity.UserView], error)
}
