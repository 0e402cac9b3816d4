package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/campusops/academic-scheduling/internal/api"
	"github.com/campusops/academic-scheduling/internal/auth"
	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/catalog"
	"github.com/campusops/academic-scheduling/internal/config"
	"github.com/campusops/academic-scheduling/internal/db"
	"github.com/campusops/academic-scheduling/internal/logging"
	redisclient "github.com/campusops/academic-scheduling/internal/redis"
	"github.com/campusops/academic-scheduling/migrations"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(auth.NewPgRepository(pool), tokens, logger)
	catalogSvc := catalog.NewService(catalog.NewPgRepository(pool), logger)
	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)
	bookingSvc := booking.NewService(booking.NewPgRepository(pool), catalogSvc, locker, logger)

	router := api.NewRouter(api.RouterConfig{
		Auth:    authSvc,
		Catalog: catalogSvc,
		Booking: bookingSvc,
		PgPool:  pool,
		Redis:   rdb,
		Logger:  logger,
		Env:     cfg.Env,
		Version: version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("api server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
