package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"donorhub/internal/domain/entity"
	domainerrors "donorhub/internal/domain/errors"
	"donorhub/internal/domain/repository"
	"donorhub/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore backs the in-memory repositories used by scenario tests.
type memoryStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	donors    map[uuid.UUID]*entity.DonorProfile
	companies map[uuid.UUID]*entity.CompanyProfile

	failDonorCreate error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     map[uuid.UUID]*entity.User{},
		donors:    map[uuid.UUID]*entity.DonorProfile{},
		companies: map[uuid.UUID]*entity.CompanyProfile{},
	}
}

func (s *memoryStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}

func (s *memoryStore) profileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.donors) + len(s.companies)
}

func (s *memoryStore) storedHash(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.users[id].PasswordHash
}

type memoryUserRepo struct{ s *memoryStore }

func (r memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.s.users[user.ID] = &stored

	return nil
}

func (r memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user

	return &found, nil
}

func (r memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, user := range r.s.users {
		if user.Email == email {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r memoryUserRepo) mutate(id uuid.UUID, fn func(*entity.User)) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	fn(user)
	user.UpdatedAt = time.Now()
	updated := *user

	return &updated, nil
}

func (r memoryUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) { u.PasswordHash = passwordHash })
}

func (r memoryUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarPath string) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) { u.AvatarPath = avatarPath })
}

func (r memoryUserRepo) Update(_ context.Context, id uuid.UUID, fields entity.UserFields) (*entity.User, error) {
	return r.mutate(id, fields.Apply)
}

type memoryDonorRepo struct{ s *memoryStore }

func (r memoryDonorRepo) Create(_ context.Context, profile *entity.DonorProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failDonorCreate != nil {
		return r.s.failDonorCreate
	}
	profile.ID = uuid.New()
	stored := *profile
	r.s.donors[profile.ID] = &stored

	return nil
}

func (r memoryDonorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.DonorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p, ok := r.s.donors[id]; ok {
		found := *p

		return &found, nil
	}

	return nil, repository.ErrProfileNotFound
}

func (r memoryDonorRepo) FindByOwnerID(_ context.Context, userID uuid.UUID) (*entity.DonorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.donors {
		if p.UserID == userID {
			found := *p

			return &found, nil
		}
	}

	return nil, repository.ErrProfileNotFound
}

func (r memoryDonorRepo) Update(_ context.Context, profile *entity.DonorProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.donors[profile.ID]; !ok {
		return repository.ErrProfileNotFound
	}
	stored := *profile
	r.s.donors[profile.ID] = &stored

	return nil
}

func (r memoryDonorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.donors, id)

	return nil
}

type memoryCompanyRepo struct{ s *memoryStore }

func (r memoryCompanyRepo) Create(_ context.Context, profile *entity.CompanyProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.companies {
		if p.TaxID == profile.TaxID || p.UserID == profile.UserID {
			return domainerrors.ErrProfileAlreadyExists.WrapMessage("tax id already registered")
		}
	}
	profile.ID = uuid.New()
	stored := *profile
	r.s.companies[profile.ID] = &stored

	return nil
}

func (r memoryCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CompanyProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p, ok := r.s.companies[id]; ok {
		found := *p

		return &found, nil
	}

	return nil, repository.ErrProfileNotFound
}

func (r memoryCompanyRepo) FindByOwnerID(_ context.Context, userID uuid.UUID) (*entity.CompanyProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.companies {
		if p.UserID == userID {
			found := *p

			return &found, nil
		}
	}

	return nil, repository.ErrProfileNotFound
}

func (r memoryCompanyRepo) Update(_ context.Context, profile *entity.CompanyProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.companies {
		if id != profile.ID && p.TaxID == profile.TaxID {
			return domainerrors.ErrProfileAlreadyExists.WrapMessage("tax id already registered")
		}
	}
	if _, ok := r.s.companies[profile.ID]; !ok {
		return repository.ErrProfileNotFound
	}
	stored := *profile
	r.s.companies[profile.ID] = &stored

	return nil
}

func (r memoryCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.companies, id)

	return nil
}

// memoryTxManager runs the callback directly; the in-memory store has no rollback.
type memoryTxManager struct{ s *memoryStore }

func (m memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m memoryTxManager) UserRepo() repository.UserRepository       { return memoryUserRepo(m) }
func (m memoryTxManager) DonorRepo() repository.DonorRepository     { return memoryDonorRepo(m) }
func (m memoryTxManager) CompanyRepo() repository.CompanyRepository { return memoryCompanyRepo(m) }

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AccountEvent
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []service.AccountEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]service.AccountEventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}
