package httptransport_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/account-service/internal/guard"
	"github.com/ErlanBelekov/account-service/internal/health"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/memory"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/token"
	httptransport "github.com/ErlanBelekov/account-service/internal/transport/http"
	"github.com/ErlanBelekov/account-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testKey = "router-test-secret-at-least-32-bytes"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	tokens *token.Service
}

func newTestServer(t *testing.T, expose bool) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := token.New([]byte(testKey), time.Minute)
	repo := memory.NewUserRepository(password.NewBcrypt(bcrypt.MinCost), tokens)
	users := usecase.NewUserUsecase(repo, logger)
	checker := health.NewChecker(logger, prometheus.NewRegistry())

	r := httptransport.NewRouter(logger, guard.New(tokens), users, handler.NewHealthHandler(checker),
		httptransport.RouterConfig{ExposeRejectionReason: expose})
	return &testServer{engine: r, tokens: tokens}
}

func (s *testServer) do(method, path, body, auth string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_SignUpLoginAndMe(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/users", `{"email":"ada@example.com","password":"hunter22","name":"Ada"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct{ ID string }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = s.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var profile struct {
		User  struct{ ID, Name, Email string }
		Token string
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, created.ID, profile.User.ID)
	assert.NotContains(t, w.Body.String(), "hunter22")

	w = s.do(http.MethodGet, "/me", "", "Bearer "+profile.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)

	w = s.do(http.MethodGet, "/users/"+created.ID, "", "Bearer "+profile.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MultibytePasswordOverLimitIsBadRequest(t *testing.T) {
	s := newTestServer(t, false)

	body := `{"email":"e@example.com","password":"` + strings.Repeat("é", 40) + `","name":"E"}`
	w := s.do(http.MethodPost, "/users", body, "")

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.JSONEq(t, `{"error":"Password must be at most 72 bytes"}`, w.Body.String())
}

func TestRouter_NoCredentialsIsNotFound(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{"/users", "/me", "/users/abc"} {
		w := s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestRouter_BadTokenIsBadRequest(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/users", "", "Bearer not.a.token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
}

func TestRouter_ExposedRejectionReason(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/users", "", "Bearer not.a.token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token","reason":"invalid"}`, w.Body.String())
}

func TestRouter_MeForDeletedUserIsUnauthorized(t *testing.T) {
	s := newTestServer(t, false)

	tok, err := s.tokens.Issue("ghost")
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/me", "", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_DeleteThenGet(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/users", `{"email":"b@example.com","password":"pw","name":"B"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct{ ID string }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	tok, err := s.tokens.Issue(created.ID)
	require.NoError(t, err)
	auth := "Bearer " + tok

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/users/"+created.ID, "", auth).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/users/"+created.ID, "", auth).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/users/"+created.ID, "", auth).Code)
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
