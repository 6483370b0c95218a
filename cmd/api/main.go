package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/montech/articles-api/internal/api"
	"github.com/montech/articles-api/internal/core/service"
	"github.com/montech/articles-api/internal/infrastructure/db/mongo"
	"github.com/montech/articles-api/internal/infrastructure/db/redis"
	"github.com/montech/articles-api/internal/pkg/config"
	"github.com/montech/articles-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "articles-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		stop()
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run wires the service and serves until ctx is cancelled. Every store
// opened here is closed before it returns, on success or failure.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// 1. MongoDB
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	defer func() {
		if err := mongo.Disconnect(context.Background(), mongoClient); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	// 2. Redis
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// 3. Repositories
	userRepo := mongo.NewUserRepository(db)
	roleRepo := mongo.NewRoleRepository(db)
	articleRepo := mongo.NewArticleRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, roleRepo, articleRepo); err != nil {
		return err
	}
	tx := mongo.NewTransactor(mongoClient)
	revocations := redis.NewTokenRevocationStore(rdb)

	// 4. Services
	creds := service.NewCredentialService(cfg.Auth.JWTKey, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	userService := service.NewUserService(userRepo, roleRepo, tx, creds, revocations, log.With().Str("component", "users").Logger())
	articleService := service.NewArticleService(articleRepo, userRepo, tx, log.With().Str("component", "articles").Logger())

	// 5. Router and HTTP server
	router := api.NewRouter(api.Dependencies{
		Users:       userService,
		Articles:    articleService,
		Tokens:      creds,
		Revocations: revocations,
		Mongo:       db,
		Redis:       rdb,
		Logger:      log.With().Str("component", "http").Logger(),
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Serve until a signal arrives or the listener fails
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}
