// The audit worker periodically scans stored bookings for pairs that
// violate the no-overlap rule and records them in the event log. The
// database exclusion constraint should make findings rare; the worker
// exists to surface anything that slipped in before the constraint or
// through manual data edits.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campusops/academic-scheduling/internal/booking"
	"github.com/campusops/academic-scheduling/internal/catalog"
	"github.com/campusops/academic-scheduling/internal/config"
	"github.com/campusops/academic-scheduling/internal/db"
	"github.com/campusops/academic-scheduling/internal/logging"
	redisclient "github.com/campusops/academic-scheduling/internal/redis"
)

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

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	catalogSvc := catalog.NewService(catalog.NewPgRepository(pool), logger)
	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)
	svc := booking.NewService(booking.NewPgRepository(pool), catalogSvc, locker, logger)

	logger.Info("audit worker started", zap.Duration("interval", cfg.AuditInterval))

	runOnce(ctx, svc, logger)

	ticker := time.NewTicker(cfg.AuditInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("audit worker stopping")
			return
		case <-ticker.C:
			runOnce(ctx, svc, logger)
		}
	}
}

func runOnce(ctx context.Context, svc *booking.Service, logger *zap.Logger) {
	start := time.Now()
	found, err := svc.AuditOverlaps(ctx)
	if err != nil {
		logger.Error("overlap audit failed", zap.Error(err))
		return
	}
	logger.Info("overlap audit finished",
		zap.Int("overlapping_pairs", found),
		zap.Duration("took", time.Since(start)))
}
