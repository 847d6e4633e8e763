package memory

import (
	"context"
	"strings"
	"sync"

	"listing-portal/internal/core/domain"
)

// UserRepository - пользователи в памяти. Имя и email уникальны
// без учета регистра, как индексы в PostgresUserRepository.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, user.Username) {
			return 0, domain.ErrUsernameInUse
		}
		if strings.EqualFold(u.Email, user.Email) {
			return 0, domain.ErrEmailInUse
		}
	}

	r.nextID++
	stored := *user
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return stored.ID, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Username, username) }), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) find(match func(domain.User) bool) *domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}
