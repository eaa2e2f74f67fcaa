// Package synthetic provides a stateless UserRepository that fabricates
// deterministic records. Nothing is stored between calls.
package synthetic

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/repository"
)

// UserID is returned by every Create and Login.
const UserID = "1234abcd"

type UserRepository struct {
	tokens repository.TokenIssuer
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(tokens repository.TokenIssuer) *UserRepository {
	return &UserRepository{tokens: tokens}
}

func (r *UserRepository) GetAll(_ context.Context) ([]domain.UserSummary, error) {
	return []domain.UserSummary{}, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.UserSummary, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrUserNotFound
	}
	s := summaryFor(id)
	return &s, nil
}

func (r *UserRepository) Create(_ context.Context, _ domain.UnsavedUser) (string, error) {
	return UserID, nil
}

// Delete always succeeds: every id is treated as existing, matching GetByID.
func (r *UserRepository) Delete(_ context.Context, _ string) error {
	return nil
}

func (r *UserRepository) Login(_ context.Context, cred domain.UserCredential) (*domain.UserProfile, error) {
	if cred.Email == "" || cred.Password == "" {
		return nil, domain.ErrUserNotFound
	}

	signed, err := r.tokens.Issue(UserID)
	if err != nil {
		return nil, domain.NewGenericError("issue token", err)
	}

	user := summaryFor(UserID)
	user.Email = cred.Email
	return &domain.UserProfile{User: user, Token: signed}, nil
}

func summaryFor(id string) domain.UserSummary {
	return domain.UserSummary{
		ID:    id,
		Name:  fmt.Sprintf("%s's name", id),
		Email: fmt.Sprintf("%s@example.com", id),
	}
}
