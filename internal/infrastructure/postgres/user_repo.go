package postgres

import (
	"context"
	"errors"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation = "23505"

	emailConstraint = "users_email_key"
)

type UserRepository struct {
	pool   *pgxpool.Pool
	hasher password.Hasher
	tokens repository.TokenIssuer
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool, hasher password.Hasher, tokens repository.TokenIssuer) *UserRepository {
	return &UserRepository{pool: pool, hasher: hasher, tokens: tokens}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, domain.NewGenericError("list users", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserSummary, error) {
		var s domain.UserSummary
		err := row.Scan(&s.ID, &s.Name, &s.Email)
		return s, err
	})
	if err != nil {
		return nil, domain.NewGenericError("scan users", err)
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.UserSummary, error) {
	u, err := r.findOne(ctx, `SELECT id, email, password, name FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	s := u.Summary()
	return &s, nil
}

// Create relies on the primary key and users_email_key constraints, so the
// uniqueness check and the insert are one statement.
func (r *UserRepository) Create(ctx context.Context, user domain.UnsavedUser) (string, error) {
	hash, err := r.hasher.Hash(user.Password)
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return "", err
	}
	if err != nil {
		return "", domain.NewGenericError("hash password", err)
	}

	id := uuid.NewString()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password, name) VALUES ($1, $2, $3, $4)`,
		id, user.Email, hash, user.Name,
	)
	if err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			return "", conflict
		}
		return "", domain.NewGenericError("insert user", err)
	}
	return id, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.NewGenericError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Login(ctx context.Context, cred domain.UserCredential) (*domain.UserProfile, error) {
	u, err := r.findOne(ctx, `SELECT id, email, password, name FROM users WHERE email = $1`, cred.Email)
	if err != nil {
		return nil, err
	}
	return repository.CompleteLogin(u, cred, r.hasher, r.tokens)
}

// findOne returns nil, nil when no row matches.
func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewGenericError("find user", err)
	}
	return &u, nil
}

// uniqueConflict maps a unique violation to the matching domain error, or
// returns nil for any other error.
func uniqueConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	if pgErr.ConstraintName == emailConstraint {
		return domain.ErrEmailAlreadyExists
	}
	return domain.ErrUserAlreadyExists
}
