package usecase

import (
	"testing"

	"donorhub/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestResultConstructors(t *testing.T) {
	ok := Success(42)
	assert.True(t, ok.IsSuccess())
	assert.Empty(t, ok.Reason)
	assert.Equal(t, 42, ok.Value)

	partial := PartialSuccess("identity")
	assert.True(t, partial.IsPartial())
	assert.False(t, partial.IsSuccess())

	failed := Failure[*entity.UserView](ReasonNotFound)
	assert.True(t, failed.IsFailure())
	assert.Nil(t, failed.Value)

	kept := FailureWith(ReasonRoleMissing, &entity.UserView{Email: "r@x.com"})
	assert.True(t, kept.IsFailure())
	assert.Equal(t, "r@x.com", kept.Value.Email)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "partial_success", StatusPartialSuccess.String())
	assert.Equal(t, "failure", StatusFailure.String())
}

func TestProfileDetailsRoles(t *testing.T) {
	var details ProfileDetails = DonorDetails{}
	assert.Equal(t, entity.RoleDonor, details.Role())

	details = CompanyDetails{}
	assert.Equal(t, entity.RoleCompany, details.Role())
}
