package impl

import (
	"context"
	"log/slog"

	deliverycontext "donorhub/internal/delivery/context"
	"donorhub/internal/domain/entity"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/repository"
	"donorhub/internal/domain/service"
	"donorhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	events    *eventEmitter
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		events:    newEventEmitter(params.Publisher, params.Logger),
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SaveProfile runs in one transaction; any business rejection rolls it back.
func (srv *profileService) SaveProfile(ctx context.Context, userID uuid.UUID, details usecase.ProfileDetails) (usecase.Result[*entity.UserView], error) {
	var (
		user *entity.User
		view *entity.UserView
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		user = found

		if details == nil || !user.Role.IsValid() || details.Role() != user.Role {
			return domainerrors.ErrProfileRoleMismatch
		}

		view = user.View()

		switch d := details.(type) {
		case usecase.DonorDetails:
			profile, err := saveDonorProfile(ctx, repoFactory.DonorRepo(), user.ID, d)
			if err != nil {
				return err
			}
			view.WithDonor(profile)

		case usecase.CompanyDetails:
			profile, err := saveCompanyProfile(ctx, repoFactory.CompanyRepo(), user.ID, d)
			if err != nil {
				return err
			}
			view.WithCompany(profile)
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, repository.ErrUserNotFound):
		return usecase.Failure[*entity.UserView](usecase.ReasonNotFound), nil
	case errors.Is(err, domainerrors.ErrProfileRoleMismatch):
		srv.log(ctx).Warn("Profile details do not match account role", slog.Any("userID", userID))

		return usecase.Failure[*entity.UserView](usecase.ReasonRoleMissing), nil
	case errors.Is(err, domainerrors.ErrProfileAlreadyExists):
		srv.log(ctx).Warn("Profile tax id already registered", slog.Any("userID", userID))

		return usecase.Failure[*entity.UserView](usecase.ReasonAlreadyExists), nil
	default:
		return usecase.Result[*entity.UserView]{}, errors.Wrap(err, "failed to save profile")
	}

	srv.log(ctx).Info("Profile saved", slog.Any("userID", user.ID), slog.Any("role", user.Role))
	srv.events.emit(ctx, service.AccountEventProfileSaved, user)

	return usecase.Success(view), nil
}

// saveDonorProfile creates the owner's donor profile or overwrites the existing one.
func saveDonorProfile(ctx context.Context, repo repository.DonorRepository, userID uuid.UUID, d usecase.DonorDetails) (*entity.DonorProfile, error) {
	existing, err := repo.FindByOwnerID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		profile := newDonorProfile(userID, d)
		if err := repo.Create(ctx, profile); err != nil {
			return nil, err
		}

		return profile, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find donor profile")
	}

	existing.TaxID = d.TaxID
	existing.BloodType = d.BloodType
	existing.BirthDate = d.BirthDate
	if err := repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// saveCompanyProfile creates the owner's company profile or overwrites the existing one.
func saveCompanyProfile(ctx context.Context, repo repository.CompanyRepository, userID uuid.UUID, d usecase.CompanyDetails) (*entity.CompanyProfile, error) {
	existing, err := repo.FindByOwnerID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		profile := newCompanyProfile(userID, d)
		if err := repo.Create(ctx, profile); err != nil {
			return nil, err
		}

		return profile, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find company profile")
	}

	existing.TaxID = d.TaxID
	existing.InstitutionName = d.InstitutionName
	existing.FacilityCode = d.FacilityCode
	if err := repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}
