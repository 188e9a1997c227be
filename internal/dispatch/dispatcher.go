package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/notify"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/reminder"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

var (
	// ErrEmailNotConfigured is returned when an email reminder is dispatched
	// without a mail transport. Reported per reminder, never a crash.
	ErrEmailNotConfigured = errors.New("dispatch: email transport not configured")

	// ErrNoRecipientAddress is returned when the recipient has no email address
	ErrNoRecipientAddress = errors.New("dispatch: recipient has no email address")
)

// Dispatcher delivers a due reminder through its channel.
//
// In-app reminders need no transport: the badge view reads unsent reminders
// directly, so dispatch succeeds immediately with no side effects. Email
// reminders are formatted and handed to the mail transport.
type Dispatcher struct {
	email      notify.EmailSender
	clinicName string
	location   *time.Location
	logger     *logging.Logger
}

// NewDispatcher creates a dispatcher. email may be nil, in which case every
// email-channel dispatch fails with ErrEmailNotConfigured.
func NewDispatcher(email notify.EmailSender, clinicName string, location *time.Location, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}
	if clinicName == "" {
		clinicName = "Clínica"
	}
	return &Dispatcher{email: email, clinicName: clinicName, location: location, logger: logger}
}

// Dispatch delivers one reminder through its channel.
func (d *Dispatcher) Dispatch(ctx context.Context, r reminder.Reminder) error {
	switch r.Channel {
	case reminder.ChannelInApp:
		return nil
	case reminder.ChannelEmail:
		return d.sendEmail(ctx, r)
	default:
		return fmt.Errorf("dispatch: unknown channel %q", r.Channel)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, r reminder.Reminder) error {
	if d.email == nil {
		return ErrEmailNotConfigured
	}
	if r.RecipientEmail == "" {
		return ErrNoRecipientAddress
	}

	msg := notify.EmailMessage{
		To:      r.RecipientEmail,
		ToName:  r.RecipientName,
		Subject: r.Title,
		Body:    d.textBody(r),
		HTML:    d.htmlBody(r),
	}
	if err := d.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("dispatch: email send: %w", err)
	}
	return nil
}

func (d *Dispatcher) textBody(r reminder.Reminder) string {
	var b strings.Builder
	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Para: %s\n", formatDue(r.DueAt, d.location))
	if r.LeadMinutes > 0 {
		fmt.Fprintf(&b, "Antecedência: %d min\n", r.LeadMinutes)
	}
	if r.CreatorName != "" {
		fmt.Fprintf(&b, "Criado por: %s\n", r.CreatorName)
	}
	fmt.Fprintf(&b, "\n%s", d.clinicName)
	return b.String()
}

func (d *Dispatcher) htmlBody(r reminder.Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", r.Title)
	if r.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>", r.Description)
	}
	fmt.Fprintf(&b, "<p><strong>Para:</strong> %s</p>", formatDue(r.DueAt, d.location))
	if r.LeadMinutes > 0 {
		fmt.Fprintf(&b, "<p><strong>Antecedência:</strong> %d min</p>", r.LeadMinutes)
	}
	if r.CreatorName != "" {
		fmt.Fprintf(&b, "<p><strong>Criado por:</strong> %s</p>", r.CreatorName)
	}
	fmt.Fprintf(&b, "<p>%s</p>", d.clinicName)
	return b.String()
}

func formatDue(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006 15:04")
}
