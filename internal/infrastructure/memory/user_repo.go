// Package memory is a stateful, process-local UserRepository for
// development and tests. Data is lost on restart.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/repository"
	"github.com/google/uuid"
)

type UserRepository struct {
	hasher password.Hasher
	tokens repository.TokenIssuer

	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string // email -> id
	order   []string
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(hasher password.Hasher, tokens repository.TokenIssuer) *UserRepository {
	return &UserRepository{
		hasher:  hasher,
		tokens:  tokens,
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) GetAll(_ context.Context) ([]domain.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.UserSummary, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id].Summary())
	}
	return users, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	s := u.Summary()
	return &s, nil
}

func (r *UserRepository) Create(_ context.Context, user domain.UnsavedUser) (string, error) {
	// Hash outside the lock; bcrypt is slow.
	hash, err := r.hasher.Hash(user.Password)
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return "", err
	}
	if err != nil {
		return "", domain.NewGenericError("hash password", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return "", domain.ErrEmailAlreadyExists
	}

	id := uuid.NewString()
	if _, taken := r.byID[id]; taken {
		return "", domain.ErrUserAlreadyExists
	}

	r.byID[id] = &domain.User{ID: id, Email: user.Email, PasswordHash: hash, Name: user.Name}
	r.byEmail[user.Email] = id
	r.order = append(r.order, id)
	return id, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	r.order = removeID(r.order, id)
	return nil
}

func (r *UserRepository) Login(_ context.Context, cred domain.UserCredential) (*domain.UserProfile, error) {
	r.mu.RLock()
	var user *domain.User
	if id, ok := r.byEmail[cred.Email]; ok {
		cp := *r.byID[id]
		user = &cp
	}
	r.mu.RUnlock()

	return repository.CompleteLogin(user, cred, r.hasher, r.tokens)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
