// Package backend selects and opens the UserRepository implementation named
// by STORAGE_BACKEND.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/account-service/config"
	"github.com/ErlanBelekov/account-service/internal/health"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/memory"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/mongodb"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/synthetic"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/repository"
)

const (
	Synthetic = "synthetic"
	Memory    = "memory"
	Mongo     = "mongo"
	Postgres  = "postgres"
)

// Backend is an opened storage backend. Dependency.Pinger is nil for
// process-local backends.
type Backend struct {
	Users      repository.UserRepository
	Dependency health.Dependency

	close func(ctx context.Context) error
}

// Close releases connections held by the backend.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, cfg *config.Config, tokens repository.TokenIssuer, logger *slog.Logger) (*Backend, error) {
	hasher := password.NewBcrypt(cfg.BcryptCost)
	logger = logger.With("component", "backend", "backend", cfg.StorageBackend)

	switch cfg.StorageBackend {
	case Synthetic:
		logger.Warn("synthetic backend: every lookup succeeds, nothing is stored")
		return &Backend{
			Users:      synthetic.NewUserRepository(tokens),
			Dependency: health.Dependency{Name: Synthetic},
		}, nil

	case Memory:
		return &Backend{
			Users:      memory.NewUserRepository(hasher, tokens),
			Dependency: health.Dependency{Name: Memory},
		}, nil

	case Mongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		repo := mongodb.NewUserRepository(client.Database(), hasher, tokens)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		logger.Info("connected", "database", cfg.MongoDatabase)
		return &Backend{
			Users:      repo,
			Dependency: health.Dependency{Name: "mongodb", Pinger: client},
			close:      client.Close,
		}, nil

	case Postgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		logger.Info("connected")
		return &Backend{
			Users:      postgres.NewUserRepository(pool, hasher, tokens),
			Dependency: health.Dependency{Name: Postgres, Pinger: pool},
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
