package impl

import (
	"context"
	"testing"
	"time"

	"donorhub/internal/domain/entity"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/repository"
	mockRepo "donorhub/internal/mocks/repository"
	mockService "donorhub/internal/mocks/service"
	"donorhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service     usecase.ProfileUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	userRepo    *mockRepo.MockUserRepository
	donorRepo   *mockRepo.MockDonorRepository
	companyRepo *mockRepo.MockCompanyRepository
	publisher   *mockService.MockEventPublisher
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	fx := profileServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		factory:     mockRepo.NewMockRepositoryFactory(t),
		userRepo:    mockRepo.NewMockUserRepository(t),
		donorRepo:   mockRepo.NewMockDonorRepository(t),
		companyRepo: mockRepo.NewMockCompanyRepository(t),
		publisher:   mockService.NewMockEventPublisher(t),
	}
	fx.service = NewProfileService(ProfileServiceParams{
		TxManager: fx.txManager,
		Publisher: fx.publisher,
		Logger:    newDiscardLogger(),
	})

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	return fx
}

var donorDetails = usecase.DonorDetails{
	TaxID:     "12345678901",
	BloodType: entity.BloodTypeABNegative,
	BirthDate: time.Date(1985, 1, 31, 0, 0, 0, 0, time.UTC),
}

func TestProfileService_SaveProfile_CreatesMissingDonorProfile(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Role: entity.RoleDonor}

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.factory.EXPECT().DonorRepo().Return(fx.donorRepo)
	fx.donorRepo.EXPECT().FindByOwnerID(ctx, user.ID).Return(nil, repository.ErrProfileNotFound)
	fx.donorRepo.EXPECT().Create(ctx, mock.MatchedBy(func(p *entity.DonorProfile) bool {
		return p.UserID == user.ID && p.BloodType == entity.BloodTypeABNegative
	})).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(nil)

	result, err := fx.service.SaveProfile(ctx, user.ID, donorDetails)

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.NotNil(t, result.Value.Donor)
	assert.Equal(t, "1985-01-31", result.Value.Donor.BirthDate)
}

func TestProfileService_SaveProfile_UpdatesExistingDonorProfile(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Role: entity.RoleDonor}
	existing := &entity.DonorProfile{ID: uuid.New(), UserID: user.ID, TaxID: "00000000000", BloodType: entity.BloodTypeAPositive}

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.factory.EXPECT().DonorRepo().Return(fx.donorRepo)
	fx.donorRepo.EXPECT().FindByOwnerID(ctx, user.ID).Return(existing, nil)
	fx.donorRepo.EXPECT().Update(ctx, mock.MatchedBy(func(p *entity.DonorProfile) bool {
		return p.ID == existing.ID && p.TaxID == "12345678901" && p.BloodType == entity.BloodTypeABNegative
	})).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(ctx, mock.Anything).Return(nil)

	result, err := fx.service.SaveProfile(ctx, user.ID, donorDetails)

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.Equal(t, existing.ID, result.Value.Donor.ID)
}

func TestProfileService_SaveProfile_RoleMismatch(t *testing.T) {
	for name, user := range map[string]*entity.User{
		"company account":      {ID: uuid.New(), Role: entity.RoleCompany},
		"account without role": {ID: uuid.New()},
	} {
		t.Run(name, func(t *testing.T) {
			fx := createTestProfileService(t)
			ctx := context.Background()

			fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

			result, err := fx.service.SaveProfile(ctx, user.ID, donorDetails)

			require.NoError(t, err)
			assert.Equal(t, usecase.ReasonRoleMissing, result.Reason)
		})
	}
}

func TestProfileService_SaveProfile_UserNotFound(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	result, err := fx.service.SaveProfile(ctx, userID, donorDetails)

	require.NoError(t, err)
	assert.Equal(t, usecase.ReasonNotFound, result.Reason)
}

func TestProfileService_SaveProfile_TaxIDCollision(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Role: entity.RoleCompany}

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.factory.EXPECT().CompanyRepo().Return(fx.companyRepo)
	fx.companyRepo.EXPECT().FindByOwnerID(ctx, user.ID).Return(nil, repository.ErrProfileNotFound)
	fx.companyRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.CompanyProfile")).
		Return(domainerrors.ErrProfileAlreadyExists.WrapMessage("tax id already registered"))

	result, err := fx.service.SaveProfile(ctx, user.ID, usecase.CompanyDetails{TaxID: "12345678000199", InstitutionName: "Hemo", FacilityCode: "1234567"})

	require.NoError(t, err)
	assert.Equal(t, usecase.ReasonAlreadyExists, result.Reason)
}

func TestProfileService_SaveProfile_StoreError(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Role: entity.RoleDonor}

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.factory.EXPECT().DonorRepo().Return(fx.donorRepo)
	fx.donorRepo.EXPECT().FindByOwnerID(ctx, user.ID).Return(nil, errors.New("deadlock detected"))

	_, err := fx.service.SaveProfile(ctx, user.ID, donorDetails)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock detected")
}
