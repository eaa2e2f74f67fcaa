//go:build integration

package mongodb_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/mongodb"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/token"
)

var uri string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newRepo(t *testing.T) (*mongodb.UserRepository, *token.Service) {
	t.Helper()
	ctx := context.Background()

	client, err := mongodb.Connect(ctx, uri, "accounts_"+fmt.Sprint(time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Database().Drop(ctx)
		_ = client.Close(ctx)
	})

	tokens := token.New([]byte("mongo-integration-secret-32-chars!"), time.Minute)
	repo := mongodb.NewUserRepository(client.Database(), password.NewBcrypt(bcrypt.MinCost), tokens)
	require.NoError(t, repo.EnsureIndexes(ctx))
	return repo, tokens
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo, tokens := newRepo(t)

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	id, err := repo.Create(ctx, domain.UnsavedUser{Email: "ann@example.com", Password: "s3cret", Name: "Ann"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.UserSummary{ID: id, Name: "Ann", Email: "ann@example.com"}, *got)

	_, err = repo.Create(ctx, domain.UnsavedUser{Email: "ann@example.com", Password: "x", Name: "Dup"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	users, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	profile, err := repo.Login(ctx, domain.UserCredential{Email: "ann@example.com", Password: "s3cret"})
	require.NoError(t, err)
	claims, err := tokens.Validate(profile.Token)
	require.NoError(t, err)
	require.Equal(t, id, claims.SubjectID)

	_, err = repo.Login(ctx, domain.UserCredential{Email: "ann@example.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.Login(ctx, domain.UserCredential{Email: "ghost@example.com", Password: "s3cret"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.Delete(ctx, id))
	require.ErrorIs(t, repo.Delete(ctx, id), domain.ErrUserNotFound)
	_, err = repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	const n = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
		start     = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.Create(ctx, domain.UnsavedUser{Email: "race@example.com", Password: "pw", Name: "Racer"})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrEmailAlreadyExists):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.EqualValues(t, 1, successes.Load())
	require.EqualValues(t, n-1, conflicts.Load())

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
