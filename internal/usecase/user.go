package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/metrics"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/repository"
)

// UserUsecase orchestrates login and user CRUD over a UserRepository chosen
// at construction time.
type UserUsecase struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserUsecase(repo repository.UserRepository, logger *slog.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger.With("component", "user_usecase")}
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := u.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, id string) (*domain.UserSummary, error) {
	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (u *UserUsecase) CreateUser(ctx context.Context, input CreateUserInput) (string, error) {
	if err := domain.RequireFields("email", input.Email, "password", input.Password, "name", input.Name); err != nil {
		return "", err
	}
	if len(input.Password) > password.MaxBytes {
		return "", domain.ErrPasswordTooLong
	}

	id, err := u.repo.Create(ctx, domain.UnsavedUser{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	metrics.UsersCreatedTotal.Inc()
	u.logger.InfoContext(ctx, "user created", "user_id", id)
	return id, nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	u.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}
