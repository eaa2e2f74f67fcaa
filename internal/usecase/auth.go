package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/metrics"
)

// Login verifies the credential and returns the profile with a fresh token.
func (u *UserUsecase) Login(ctx context.Context, cred domain.UserCredential) (*domain.UserProfile, error) {
	if err := domain.RequireFields("email", cred.Email, "password", cred.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	profile, err := u.repo.Login(ctx, cred)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	u.logger.InfoContext(ctx, "user logged in", "user_id", profile.User.ID)
	return profile, nil
}
