package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/appointment"
	httpmiddleware "github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/http/middleware"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/reminder"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	AppointmentHandler *appointment.Handler
	ReminderHandler    *reminder.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.AppointmentHandler != nil {
		r.Route("/appointments/{id}", func(r chi.Router) {
			r.Get("/", cfg.AppointmentHandler.Get)
			r.Post("/attendance", cfg.AppointmentHandler.RecordAttendance)
			r.Post("/absence", cfg.AppointmentHandler.RecordAbsence)
			r.Post("/payment", cfg.AppointmentHandler.RecordPayment)
			r.Post("/status", cfg.AppointmentHandler.SetStatus)
		})
	}

	if cfg.ReminderHandler != nil {
		r.Route("/reminders", func(r chi.Router) {
			r.Post("/", cfg.ReminderHandler.Create)
			r.Get("/pending", cfg.ReminderHandler.ListPending)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
