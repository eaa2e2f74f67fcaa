// seed creates a demo user in the configured storage backend and logs it in.
// Run: STORAGE_BACKEND=postgres go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/account-service/config"
	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/backend"
	"github.com/ErlanBelekov/account-service/internal/token"
	"github.com/ErlanBelekov/account-service/internal/usecase"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
	seedName     = "Seed User"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v (JWT_SECRET must be set; run: direnv allow)", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	tokens := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL)

	store, err := backend.Open(ctx, cfg, tokens, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer func() { _ = store.Close(ctx) }()

	users := usecase.NewUserUsecase(store.Users, logger)

	created := true
	_, err = users.CreateUser(ctx, usecase.CreateUserInput{Email: seedEmail, Password: seedPassword, Name: seedName})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		created = false
	} else if err != nil {
		log.Fatalf("create user: %v", err)
	}

	profile, err := users.Login(ctx, domain.UserCredential{Email: seedEmail, Password: seedPassword})
	if err != nil {
		log.Fatalf("login: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Backend:  %s\n", cfg.StorageBackend)
	fmt.Printf("  User:     %s (created: %t)\n", seedEmail, created)
	fmt.Printf("  User ID:  %s\n", profile.User.ID)
	fmt.Printf("  Password: %s\n", seedPassword)
	fmt.Printf("  Token:    %s\n", profile.Token)
	fmt.Printf("  Expires:  in %s\n", tokens.TTL())
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Printf("    export JWT=%s\n", profile.Token)
	fmt.Println("    curl -s http://localhost:8080/me -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/users -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Or log in again:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
}
