package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/app/bootstrap"
	appconfig "github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/config"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/dispatch"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/observability/metrics"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/reminder"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting reminder dispatch worker",
		"env", cfg.Env,
		"interval", cfg.DispatchInterval,
		"tolerance", cfg.DispatchTolerance,
	)
	if cfg.DispatchTolerance < cfg.DispatchInterval {
		logger.Warn("tolerance smaller than tick interval, reminders can fall between ticks",
			"interval", cfg.DispatchInterval,
			"tolerance", cfg.DispatchTolerance,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Warn("invalid clinic timezone, using UTC", "tz", cfg.ClinicTimezone, "error", err)
		loc = time.UTC
	}

	emailSender := bootstrap.BuildEmailSender(ctx, cfg, logger)
	dispatcher := dispatch.NewDispatcher(emailSender, cfg.ClinicName, loc, logger)

	dispatchMetrics := metrics.NewDispatchMetrics(nil)
	store := reminder.NewStore(pool)
	coordinator := dispatch.NewCoordinator(store, dispatcher, cfg.DispatchTolerance, dispatchMetrics, logger)

	var lock *dispatch.RunLock
	if redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		defer redisClient.Close()
		lock = dispatch.NewRunLock(redisClient, cfg.DispatchLockTTL)
	}

	runner := dispatch.NewRunner(coordinator, lock, logger).WithInterval(cfg.DispatchInterval)

	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down reminder worker...")
	cancel()

	select {
	case <-done:
		logger.Info("reminder worker stopped")
	case <-time.After(30 * time.Second):
		logger.Error("reminder worker shutdown timed out")
	}
}
