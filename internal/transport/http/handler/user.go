package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/transport/http/middleware"
	"github.com/ErlanBelekov/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	GetUser(ctx context.Context, id string) (*domain.UserSummary, error)
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (string, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger.With("component", "user_handler")}
}

type createUserRequest struct {
	Email    string `json:"email"    binding:"omitempty,email,max=320"`
	Password string `json:"password"`
	Name     string `json:"name"     binding:"omitempty,max=256"`
}

type createUserResponse struct {
	ID string `json:"id"`
}

type listUsersResponse struct {
	Data []domain.UserSummary `json:"data"`
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.userUsecase.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(c, h.logger, "create user", err)
		return
	}

	c.JSON(http.StatusCreated, createUserResponse{ID: id})
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list users", err)
		return
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	c.JSON(http.StatusOK, listUsersResponse{Data: users})
}

// GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userUsecase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userUsecase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /me
// Runs after middleware.EnsureUser, which has already loaded the subject.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, c.MustGet(middleware.UserKey))
}
