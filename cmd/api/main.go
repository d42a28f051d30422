package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "secure-petstore/internal/adapters/storage/postgres"
	tokmem "secure-petstore/internal/adapters/tokens/memory"
	tokredis "secure-petstore/internal/adapters/tokens/redis"
	"secure-petstore/internal/config"
	"secure-petstore/internal/domain/users"
	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/platform/metrics"
	"secure-petstore/internal/router"
)

const shutdownTimeout = 10 * time.Second

// @title SecurePetStore API
// @version 1.0
// @description API REST de mascotas con autenticación JWT.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := openStorage(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}

	done := make(chan struct{})
	handler := router.NewRouter(router.Options{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Denylist: newDenylist(ctx, cfg, log),
		Metrics:  metrics.New(),
		Done:     done,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":        cfg.Addr(),
			"environment": cfg.Environment,
			"storage":     cfg.Storage,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down", nil)
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err.Error()})
		}
	}
	close(done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// openStorage devuelve nil con STORAGE=memory. Un Postgres caído no impide arrancar.
func openStorage(ctx context.Context, cfg *config.Config, log logger.Logger) *sql.DB {
	if cfg.Storage != config.StoragePostgres {
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return nil
	}

	db, err := pg.Open(cfg.DSN())
	if err != nil {
		log.Error("open database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if err := pg.Ping(ctx, db); err != nil {
		log.Error("database connection failed", map[string]any{"error": err.Error()})
		return db
	}
	log.Info("database connected", nil)

	if err := pg.Migrate(ctx, db); err != nil {
		log.Error("database migration failed", map[string]any{"error": err.Error()})
	}
	return db
}

func newDenylist(ctx context.Context, cfg *config.Config, log logger.Logger) users.Denylist {
	if !cfg.TokenRevocation {
		return nil
	}
	if cfg.RedisAddr == "" {
		log.Info("token revocation enabled (in-memory denylist)", nil)
		return tokmem.NewDenylist()
	}

	dl := tokredis.NewDenylist(tokredis.NewClient(tokredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}))
	if err := dl.Ping(ctx); err != nil {
		log.Warn("redis not reachable, revocation checks will fail until it is", map[string]any{"error": err.Error()})
	} else {
		log.Info("token revocation enabled (redis denylist)", map[string]any{"addr": cfg.RedisAddr})
	}
	return dl
}
