// @title        Recipe API
// @version      1.0
// @description  Owner-scoped recipe management with bearer-token authentication.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api"
	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/core/service"
	"github.com/recipebox/recipe-api/internal/infrastructure/config"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/mongo"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/redis"
	"github.com/recipebox/recipe-api/internal/infrastructure/queue"
	"github.com/recipebox/recipe-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "recipe-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// A bad signing key is a startup failure, never a per-request one.
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Audit trail ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	audit := queue.NewDispatcher(cfg.Auth.AuditWorkers, mongo.NewAuthEventRepository(store.DB), log)
	audit.Start(workerCtx)

	// --- Services ---
	authService, err := service.NewAuthService(
		mongo.NewUserRepository(store.DB),
		tokens,
		log,
		service.WithHashCost(cfg.Auth.BcryptCost),
		service.WithThrottle(redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)),
		service.WithAuditSink(audit),
	)
	if err != nil {
		return err
	}
	recipeService := service.NewRecipeService(mongo.NewRecipeRepository(store.DB), log)

	e := api.NewRouter(api.Dependencies{
		AuthService:   authService,
		RecipeService: recipeService,
		Verifier:      tokens,
		Health: map[string]handler.Pinger{
			"mongodb": store,
			"redis":   redis.Pinger{Client: rdb},
		},
		Logger:        log,
		CORSOrigins:   cfg.CORSOrigins,
		AuthRateLimit: cfg.Auth.RateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("recipe api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// No more requests can record events once the server is down.
	audit.Close()
	log.Info().Msg("server stopped")
	return nil
}
