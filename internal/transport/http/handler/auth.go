package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of UserUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, cred domain.UserCredential) (*domain.UserProfile, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string `json:"email"    binding:"omitempty,email"`
	Password string `json:"password"`
}

// POST /auth/login
// Unknown email and wrong password both return 404 "User not found".
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.authUsecase.Login(c.Request.Context(), domain.UserCredential{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, "login", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
