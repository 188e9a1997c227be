package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the lifecycle of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// PaymentMethod specifies how an appointment was paid. Absent means unpaid.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

// Appointment represents a scheduled clinic visit.
//
// Attended and NoShow are tri-state: nil means the fact has not been recorded
// yet. Attended and NoShow are never both true.
type Appointment struct {
	ID            uuid.UUID      `json:"id"`
	PatientID     uuid.UUID      `json:"patient_id"`
	Status        Status         `json:"status"`
	Attended      *bool          `json:"attended,omitempty"`
	NoShow        *bool          `json:"no_show,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	ScheduledAt   time.Time      `json:"scheduled_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
