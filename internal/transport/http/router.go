package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/account-service/internal/guard"
	"github.com/ErlanBelekov/account-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/account-service/internal/transport/http/middleware"
	"github.com/ErlanBelekov/account-service/internal/usecase"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	ExposeRejectionReason bool
}

func NewRouter(logger *slog.Logger, g *guard.Guard, users *usecase.UserUsecase, healthHandler *handler.HealthHandler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics("/healthz", "/readyz"))

	authHandler := handler.NewAuthHandler(users, logger)
	userHandler := handler.NewUserHandler(users, logger)

	authMW := middleware.Auth(g, middleware.WithRejectionDetail(cfg.ExposeRejectionReason))
	ensureUser := middleware.EnsureUser(users, logger)

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	r.POST("/auth/login", authHandler.Login)

	// Sign-up is public; everything else under /users needs a token.
	r.POST("/users", userHandler.Create)
	protected := r.Group("/users", authMW)
	protected.GET("", userHandler.List)
	protected.GET("/:id", userHandler.GetByID)
	protected.DELETE("/:id", userHandler.Delete)

	r.GET("/me", authMW, ensureUser, userHandler.Me)

	return r
}
