// Package impl contains the implementation of the application's business logic.
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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	donorRepo    repository.DonorRepository
	companyRepo  repository.CompanyRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	events       *eventEmitter
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	DonorRepo    repository.DonorRepository
	CompanyRepo  repository.CompanyRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		donorRepo:    params.DonorRepo,
		companyRepo:  params.CompanyRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		events:       newEventEmitter(params.Publisher, params.Logger),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the Identity and then, separately, its role profile.
// The two writes are not atomic: a profile failure leaves the Identity in place
// and yields a partial success.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (usecase.Result[*entity.UserView], error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.Any("role", input.Role))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return usecase.Result[*entity.UserView]{}, errors.Wrap(err, "failed to hash password during registration")
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		City:         input.City,
		Region:       input.Region,
		PostalCode:   input.PostalCode,
	}
	if input.Role.IsValid() {
		user.Role = input.Role
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Warn("Registration rejected, email already in use", slog.String("email", input.Email))

			return usecase.Failure[*entity.UserView](usecase.ReasonAlreadyExists), nil
		}

		return usecase.Result[*entity.UserView]{}, errors.Wrap(err, "failed to create user during registration")
	}

	view := user.View()

	if !input.Role.IsValid() {
		// The Identity is kept even though the request is reported as failed.
		srv.log(ctx).Warn("Registration carried no routable role, identity kept without profile",
			slog.Any("userID", user.ID),
			slog.Any("role", input.Role),
		)

		return usecase.FailureWith(usecase.ReasonRoleMissing, view), nil
	}

	if err := srv.createProfile(ctx, user, input.Profile, view); err != nil {
		srv.log(ctx).Warn("Profile creation failed, registration is partial",
			slog.Any("userID", user.ID),
			slog.Any("role", user.Role),
			slog.Any("error", err),
		)
		srv.events.emit(ctx, service.AccountEventRegistrationPartial, user)

		return usecase.PartialSuccess(view), nil
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID), slog.Any("role", user.Role))
	srv.events.emit(ctx, service.AccountEventRegistered, user)

	return usecase.Success(view), nil
}

// createProfile dispatches on the payload kind and attaches the created profile to view.
func (srv *userService) createProfile(ctx context.Context, user *entity.User, details usecase.ProfileDetails, view *entity.UserView) error {
	if details == nil {
		return errors.Errorf("no %s profile details supplied", user.Role)
	}
	if details.Role() != user.Role {
		return errors.Errorf("%s profile details supplied for a %s account", details.Role(), user.Role)
	}

	switch d := details.(type) {
	case usecase.DonorDetails:
		profile := newDonorProfile(user.ID, d)
		if err := srv.donorRepo.Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create donor profile")
		}
		view.WithDonor(profile)

	case usecase.CompanyDetails:
		profile := newCompanyProfile(user.ID, d)
		if err := srv.companyRepo.Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create company profile")
		}
		view.WithCompany(profile)

	default:
		return errors.Errorf("unsupported profile details %T", details)
	}

	return nil
}

// Authenticate verifies the credentials and issues an access token.
func (srv *userService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (usecase.Result[*usecase.AuthenticateOutput], error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Authentication failed, unknown email", slog.String("email", input.Email))

			return usecase.Failure[*usecase.AuthenticateOutput](usecase.ReasonNotFound), nil
		}

		return usecase.Result[*usecase.AuthenticateOutput]{}, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Authentication failed, wrong password", slog.Any("userID", user.ID))

		return usecase.Failure[*usecase.AuthenticateOutput](usecase.ReasonInvalidCredential), nil
	}

	token, err := srv.tokenService.Issue(service.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return usecase.Result[*usecase.AuthenticateOutput]{}, errors.Wrap(err, "failed to issue access token")
	}

	return usecase.Success(&usecase.AuthenticateOutput{User: user.View(), Token: token}), nil
}

// ChangePassword replaces the credential record after checking the old password.
// A wrong old password leaves the stored record untouched.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) (usecase.Result[*entity.UserView], error) {
	user, result, err := srv.findUser(ctx, input.UserID)
	if user == nil {
		return result, err
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		srv.log(ctx).Info("Password change rejected, old password mismatch", slog.Any("userID", user.ID))

		return usecase.Failure[*entity.UserView](usecase.ReasonInvalidCredential), nil
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return usecase.Result[*entity.UserView]{}, errors.Wrap(err, "failed to hash new password")
	}

	updated, err := srv.userRepo.UpdatePassword(ctx, user.ID, hashedPassword)
	if err != nil {
		return notFoundOrError(err, "failed to update password")
	}

	srv.events.emit(ctx, service.AccountEventPasswordChanged, updated)

	return usecase.Success(updated.View()), nil
}

// UpdateAvatar records the path of an avatar that has already been stored.
func (srv *userService) UpdateAvatar(ctx context.Context, input *usecase.UpdateAvatarInput) (usecase.Result[*entity.UserView], error) {
	user, result, err := srv.findUser(ctx, input.UserID)
	if user == nil {
		return result, err
	}

	updated, err := srv.userRepo.UpdateAvatar(ctx, user.ID, input.AvatarPath)
	if err != nil {
		return notFoundOrError(err, "failed to update avatar")
	}

	srv.log(ctx).Debug("Avatar updated", slog.Any("userID", user.ID), slog.String("path", input.AvatarPath))
	srv.events.emit(ctx, service.AccountEventAvatarUpdated, updated)

	return usecase.Success(updated.View()), nil
}

// GetUser returns the Identity with its role profile, when one exists.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (usecase.Result[*entity.UserView], error) {
	user, result, err := srv.findUser(ctx, userID)
	if user == nil {
		return result, err
	}

	view := user.View()

	switch user.Role {
	case entity.RoleDonor:
		profile, err := srv.donorRepo.FindByOwnerID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return usecase.Result[*entity.UserView]{}, errors.Wrap(err, "failed to load donor profile")
		}
		view.WithDonor(profile)

	case entity.RoleCompany:
		profile, err := srv.companyRepo.FindByOwnerID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return usecase.Result[*entity.UserView]{}, errors.Wrap(err, "failed to load company profile")
		}
		view.WithCompany(profile)
	}

	return usecase.Success(view), nil
}

// UpdateUser applies a partial update of the non-credential fields.
func (srv *userService) UpdateUser(ctx context.Context, userID uuid.UUID, fields entity.UserFields) (usecase.Result[*entity.UserView], error) {
	updated, err := srv.userRepo.Update(ctx, userID, fields)
	if err != nil {
		return notFoundOrError(err, "failed to update user")
	}

	return usecase.Success(updated.View()), nil
}

// findUser loads a user. A nil user means the returned result and error are final.
func (srv *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, usecase.Result[*entity.UserView], error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		result, err := notFoundOrError(err, "failed to find user by id")

		return nil, result, err
	}

	return user, usecase.Result[*entity.UserView]{}, nil
}

func notFoundOrError(err error, message string) (usecase.Result[*entity.UserView], error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		return usecase.Failure[*entity.UserView](usecase.ReasonNotFound), nil
	}

	return usecase.Result[*entity.UserView]{}, errors.Wrap(err, message)
}

func newDonorProfile(userID uuid.UUID, d usecase.DonorDetails) *entity.DonorProfile {
	return &entity.DonorProfile{
		UserID:    userID,
		TaxID:     d.TaxID,
		BloodType: d.BloodType,
		BirthDate: d.BirthDate,
	}
}

func newCompanyProfile(userID uuid.UUID, d usecase.CompanyDetails) *entity.CompanyProfile {
	return &entity.CompanyProfile{
		UserID:          userID,
		TaxID:           d.TaxID,
		InstitutionName: d.InstitutionName,
		FacilityCode:    d.FacilityCode,
	}
}
