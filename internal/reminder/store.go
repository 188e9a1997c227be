package reminder

import (
	"context"
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

// Store provides persistence for reminders.
type Store struct {
	db DB
}

// NewStore creates a new reminder store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

const reminderColumns = `
		r.id, r.title, r.description, r.due_at, r.lead_minutes, r.channel,
		r.recipient_id, r.creator_id, r.sent, r.sent_at, r.created_at, r.updated_at,
		ru.name, ru.email, cu.name`

// Create inserts a new reminder with sent = false.
func (s *Store) Create(ctx context.Context, r *Reminder) error {
	if r.Title == "" {
		return ErrInvalidTitle
	}
	if !r.Channel.Valid() {
		return ErrInvalidChannel
	}
	if r.LeadMinutes < 0 {
		return ErrInvalidLead
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now().UTC()
	r.Sent = false
	r.CreatedAt = now
	r.UpdatedAt = now

	var desc *string
	if r.Description != "" {
		desc = &r.Description
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO reminders (id, title, description, due_at, lead_minutes, channel, recipient_id, creator_id, sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)`,
		r.ID, r.Title, desc, r.DueAt, r.LeadMinutes, string(r.Channel),
		r.RecipientID, r.CreatorID, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("reminder: create: %w", err)
	}
	return nil
}

// ListUnsent returns every reminder that has not been dispatched yet, with
// recipient and creator details joined in. Due filtering happens in the
// matcher, not here.
func (s *Store) ListUnsent(ctx context.Context) ([]Reminder, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+reminderColumns+`
		FROM reminders r
		JOIN users ru ON ru.id = r.recipient_id
		JOIN users cu ON cu.id = r.creator_id
		WHERE r.sent = FALSE
		ORDER BY r.due_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("reminder: list unsent: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListPendingForRecipient returns a user's unsent reminders, the read side of
// in-app delivery (the badge view).
func (s *Store) ListPendingForRecipient(ctx context.Context, recipientID uuid.UUID) ([]Reminder, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+reminderColumns+`
		FROM reminders r
		JOIN users ru ON ru.id = r.recipient_id
		JOIN users cu ON cu.id = r.creator_id
		WHERE r.sent = FALSE AND r.recipient_id = $1
		ORDER BY r.due_at ASC`, recipientID)
	if err != nil {
		return nil, fmt.Errorf("reminder: list pending for recipient: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// MarkSent flips a reminder from unsent to sent. The conditional write makes
// a lost race visible: ErrAlreadySent means another run got there first.
func (s *Store) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE reminders SET sent = TRUE, sent_at = $1, updated_at = $1
		WHERE id = $2 AND sent = FALSE`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("reminder: mark sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadySent
	}
	return nil
}

func scanReminders(rows pgx.Rows) ([]Reminder, error) {
	var result []Reminder
	for rows.Next() {
		var r Reminder
		var channel string
		var desc *string
		err := rows.Scan(
			&r.ID, &r.Title, &desc, &r.DueAt, &r.LeadMinutes, &channel,
			&r.RecipientID, &r.CreatorID, &r.Sent, &r.SentAt, &r.CreatedAt, &r.UpdatedAt,
			&r.RecipientName, &r.RecipientEmail, &r.CreatorName,
		)
		if err != nil {
			return nil, fmt.Errorf("reminder: scan: %w", err)
		}
		if desc != nil {
			r.Description = *desc
		}
		r.Channel = Channel(channel)
		result = append(result, r)
	}
	return result, rows.Err()
}
