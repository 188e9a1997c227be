package appointment

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/observability/metrics"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

var tracer = otel.Tracer("clinica.internal.appointment")

// Service applies transition functions to stored appointments.
//
// Each operation is a read-modify-write of a single row; the engine itself is
// stateless per call and concurrent writers resolve by last write wins at the
// storage layer.
type Service struct {
	store   *Store
	logger  *logging.Logger
	metrics *metrics.AppointmentMetrics
}

// NewService constructs an appointment service.
func NewService(store *Store, m *metrics.AppointmentMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("appointment: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger, metrics: m}
}

// RecordAttendance marks or un-marks a patient as present.
func (s *Service) RecordAttendance(ctx context.Context, id uuid.UUID, present bool) (*Appointment, error) {
	return s.apply(ctx, id, "attendance", func(a Appointment) Appointment {
		return RecordAttendance(a, present)
	})
}

// RecordAbsence marks or un-marks a patient as a no-show.
func (s *Service) RecordAbsence(ctx context.Context, id uuid.UUID, absent bool) (*Appointment, error) {
	return s.apply(ctx, id, "absence", func(a Appointment) Appointment {
		return RecordAbsence(a, absent)
	})
}

// RecordPayment sets or clears the payment method.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, method *PaymentMethod) (*Appointment, error) {
	if method != nil && !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	return s.apply(ctx, id, "payment", func(a Appointment) Appointment {
		return RecordPayment(a, method)
	})
}

// SetStatus overrides the status directly, for explicit schedule edits.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.apply(ctx, id, "status", func(a Appointment) Appointment {
		return SetStatus(a, status)
	})
}

func (s *Service) apply(ctx context.Context, id uuid.UUID, operation string, fn func(Appointment) Appointment) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment."+operation)
	defer span.End()
	span.SetAttributes(attribute.String("clinica.appointment_id", id.String()))

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	next := fn(*current)
	if err := s.store.Update(ctx, &next); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveTransition(operation)
	s.logger.Info("appointment updated",
		"id", id,
		"operation", operation,
		"status", next.Status,
	)
	return &next, nil
}
