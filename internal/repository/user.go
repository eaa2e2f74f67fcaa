package repository

import (
	"context"

	"github.com/ErlanBelekov/account-service/internal/domain"
)

// UserRepository is the storage-agnostic contract over user records.
// Implementations return domain sentinel errors for expected failures and
// *domain.GenericError for backend failures.
type UserRepository interface {
	// GetAll returns an empty slice, not an error, when there are no users.
	GetAll(ctx context.Context) ([]domain.UserSummary, error)
	GetByID(ctx context.Context, id string) (*domain.UserSummary, error)
	// Create assigns and returns a new identifier. It fails with
	// ErrEmailAlreadyExists without inserting anything if the email is taken.
	Create(ctx context.Context, user domain.UnsavedUser) (string, error)
	// Delete fails with ErrUserNotFound if no record has the id.
	Delete(ctx context.Context, id string) error
	// Login returns ErrUserNotFound for both an unknown email and a wrong
	// password so callers cannot enumerate accounts.
	Login(ctx context.Context, cred domain.UserCredential) (*domain.UserProfile, error)
}

// TokenIssuer mints a token bound to a user ID. Satisfied by *token.Service.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}
