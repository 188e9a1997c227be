package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Channel specifies how a reminder is delivered.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
)

// Valid reports whether c is one of the known channels.
func (c Channel) Valid() bool {
	return c == ChannelInApp || c == ChannelEmail
}

// Reminder represents a scheduled notification for a user.
//
// Sent flips from false to true exactly once, after the dispatcher has
// attempted delivery; it is never reset, which is what prevents duplicate
// sends.
type Reminder struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueAt       time.Time  `json:"due_at"`
	LeadMinutes int        `json:"lead_minutes"`
	Channel     Channel    `json:"channel"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	Sent        bool       `json:"sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Joined from the users table by the store; used for email delivery.
	RecipientName  string `json:"recipient_name,omitempty"`
	RecipientEmail string `json:"recipient_email,omitempty"`
	CreatorName    string `json:"creator_name,omitempty"`
}

// FireAt returns the instant the reminder should be delivered: the due time
// minus the lead interval.
func (r Reminder) FireAt() time.Time {
	return r.DueAt.Add(-time.Duration(r.LeadMinutes) * time.Minute)
}
