package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides persistence for appointments.
type Store struct {
	db DB
}

// NewStore creates a new appointment store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// GetByID loads an appointment, returning ErrAppointmentNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, patient_id, status, attended, no_show, payment_method, scheduled_at, created_at, updated_at
		FROM appointments
		WHERE id = $1`, id)

	var a Appointment
	var status string
	var method *string
	err := row.Scan(&a.ID, &a.PatientID, &status, &a.Attended, &a.NoShow, &method, &a.ScheduledAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointment: get by id: %w", err)
	}
	a.Status = Status(status)
	if method != nil {
		m := PaymentMethod(*method)
		a.PaymentMethod = &m
	}
	return &a, nil
}

// Update persists the mutable state of an appointment as a single-row write.
func (s *Store) Update(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.UpdatedAt = now

	var method *string
	if a.PaymentMethod != nil {
		m := string(*a.PaymentMethod)
		method = &m
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE appointments
		SET status = $1, attended = $2, no_show = $3, payment_method = $4, updated_at = $5
		WHERE id = $6`,
		string(a.Status), a.Attended, a.NoShow, method, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("appointment: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
