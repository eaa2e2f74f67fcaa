package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/account-service/config"
	"github.com/ErlanBelekov/account-service/internal/guard"
	"github.com/ErlanBelekov/account-service/internal/health"
	"github.com/ErlanBelekov/account-service/internal/infrastructure/backend"
	ctxlog "github.com/ErlanBelekov/account-service/internal/log"
	"github.com/ErlanBelekov/account-service/internal/metrics"
	"github.com/ErlanBelekov/account-service/internal/token"
	httptransport "github.com/ErlanBelekov/account-service/internal/transport/http"
	"github.com/ErlanBelekov/account-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	tokens := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL, token.WithLeeway(cfg.TokenLeeway))

	store, err := backend.Open(ctx, cfg, tokens, logger)
	if err != nil {
		stop()
		log.Fatalf("storage: %v", err)
	}

	userUsecase := usecase.NewUserUsecase(store.Users, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, store.Dependency)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, guard.New(tokens), userUsecase, handler.NewHealthHandler(checker),
			httptransport.RouterConfig{ExposeRejectionReason: cfg.AuthExposeRejectionReason}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	go func() {
		logger.Info("server started", "port", cfg.Port, "storage", cfg.StorageBackend, "token_ttl", tokens.TTL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("storage close", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
