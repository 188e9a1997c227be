package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var appointmentColumns = []string{
	"id", "patient_id", "status", "attended", "no_show", "payment_method",
	"scheduled_at", "created_at", "updated_at",
}

func TestStoreGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	patientID := uuid.New()
	now := time.Now().UTC()
	attended := true
	method := "card"

	mock.ExpectQuery(`SELECT id, patient_id, status, attended, no_show, payment_method, scheduled_at, created_at, updated_at\s+FROM appointments`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(appointmentColumns).
			AddRow(id, patientID, "completed", &attended, (*bool)(nil), &method, now, now, now))

	store := NewStore(mock)
	a, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if a.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", a.Status, StatusCompleted)
	}
	if a.Attended == nil || !*a.Attended {
		t.Error("Attended should be true")
	}
	if a.NoShow != nil {
		t.Error("NoShow should be nil")
	}
	if a.PaymentMethod == nil || *a.PaymentMethod != PaymentCard {
		t.Errorf("PaymentMethod = %v, want card", a.PaymentMethod)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, patient_id, status`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(appointmentColumns))

	store := NewStore(mock)
	_, err = store.GetByID(context.Background(), id)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
	}
}

func TestStoreUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	attended := true
	noShow := false
	a := &Appointment{
		ID:       uuid.New(),
		Status:   StatusCompleted,
		Attended: &attended,
		NoShow:   &noShow,
	}

	mock.ExpectExec(`UPDATE appointments`).
		WithArgs("completed", &attended, &noShow, (*string)(nil), pgxmock.AnyArg(), a.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	store := NewStore(mock)
	if err := store.Update(context.Background(), a); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if a.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreUpdateMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	a := &Appointment{ID: uuid.New(), Status: StatusPending}

	mock.ExpectExec(`UPDATE appointments`).
		WithArgs("pending", (*bool)(nil), (*bool)(nil), (*string)(nil), pgxmock.AnyArg(), a.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewStore(mock)
	err = store.Update(context.Background(), a)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
	}
}
