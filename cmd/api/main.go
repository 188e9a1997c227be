package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/api/router"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/appointment"
	appconfig "github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/config"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/observability/metrics"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/reminder"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinica API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	appointmentMetrics := metrics.NewAppointmentMetrics(nil)

	apptStore := appointment.NewStore(pool)
	apptService := appointment.NewService(apptStore, appointmentMetrics, logger)
	apptHandler := appointment.NewHandler(apptService, apptStore, logger)

	remStore := reminder.NewStore(pool)
	remHandler := reminder.NewHandler(remStore, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		AppointmentHandler: apptHandler,
		ReminderHandler:    remHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
