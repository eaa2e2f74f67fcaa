package repository

import (
	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/password"
)

// CompleteLogin finishes a login once a backend has looked up the user by
// email. A nil user and a wrong password produce the same ErrUserNotFound.
func CompleteLogin(user *domain.User, cred domain.UserCredential, hasher password.Hasher, tokens TokenIssuer) (*domain.UserProfile, error) {
	if user == nil || !hasher.Verify(cred.Password, user.PasswordHash) {
		return nil, domain.ErrUserNotFound
	}

	signed, err := tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.NewGenericError("issue token", err)
	}

	return &domain.UserProfile{User: user.Summary(), Token: signed}, nil
}
