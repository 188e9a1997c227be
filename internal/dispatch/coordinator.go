package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/observability/metrics"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/internal/reminder"
	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

var tracer = otel.Tracer("clinica.internal.dispatch")

// ErrStoreFetch wraps a failure to load the unsent reminders. It aborts the
// run before anything is dispatched or marked.
var ErrStoreFetch = errors.New("dispatch: fetch unsent reminders")

// ReminderSource is the slice of the reminder store the coordinator needs.
type ReminderSource interface {
	ListUnsent(ctx context.Context) ([]reminder.Reminder, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Notifier delivers one reminder through its channel.
type Notifier interface {
	Dispatch(ctx context.Context, r reminder.Reminder) error
}

// Outcome records what happened to one due reminder during a run.
type Outcome struct {
	ReminderID uuid.UUID        `json:"reminder_id"`
	Channel    reminder.Channel `json:"channel"`
	Delivered  bool             `json:"delivered"`
	Error      string           `json:"error,omitempty"`
}

// RunReport aggregates one coordinator run. Late counts reminders whose
// window had already passed when this run first observed them.
type RunReport struct {
	StartedAt time.Time `json:"started_at"`
	Due       int       `json:"due"`
	Late      int       `json:"late"`
	Delivered int       `json:"delivered"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes,omitempty"`
}

// Coordinator orchestrates one dispatch run: fetch unsent reminders, match
// the due subset, dispatch each and mark it sent.
type Coordinator struct {
	store     ReminderSource
	notifier  Notifier
	tolerance time.Duration
	logger    *logging.Logger
	metrics   *metrics.DispatchMetrics
}

// NewCoordinator creates a dispatch run coordinator.
func NewCoordinator(store ReminderSource, notifier Notifier, tolerance time.Duration, m *metrics.DispatchMetrics, logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	if tolerance <= 0 {
		tolerance = reminder.DefaultTolerance
	}
	return &Coordinator{
		store:     store,
		notifier:  notifier,
		tolerance: tolerance,
		logger:    logger,
		metrics:   m,
	}
}

// RunOnce executes a single dispatch run at the given instant.
//
// Only the initial fetch is fatal: in that case nothing is marked sent and
// the error propagates so the caller retries on the next tick. Per-reminder
// failures are captured in the report and the run continues.
//
// Reminders whose window had already slipped past when the run observes them,
// e.g. because the worker was down, are delivered late on this run. Marking
// them sent drains them from the unsent set, so each is attempted exactly
// once like any other reminder.
func (c *Coordinator) RunOnce(ctx context.Context, now time.Time) (*RunReport, error) {
	ctx, span := tracer.Start(ctx, "dispatch.run")
	defer span.End()

	started := time.Now()

	candidates, err := c.store.ListUnsent(ctx)
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveRun("error", time.Since(started).Seconds())
		return nil, fmt.Errorf("%w: %w", ErrStoreFetch, err)
	}

	due := reminder.Due(now, c.tolerance, candidates)
	late := reminder.Missed(now, c.tolerance, candidates)
	if len(late) > 0 {
		c.metrics.ObserveMissed(len(late))
		c.logger.Warn("delivering reminders whose window has passed",
			"count", len(late), "tolerance", c.tolerance)
	}

	span.SetAttributes(
		attribute.Int("clinica.candidates", len(candidates)),
		attribute.Int("clinica.due", len(due)),
		attribute.Int("clinica.late", len(late)),
	)

	report := &RunReport{StartedAt: now, Due: len(due), Late: len(late)}
	for _, r := range append(due, late...) {
		outcome := c.processOne(ctx, r, now)
		if outcome.Delivered {
			report.Delivered++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	c.metrics.ObserveRun("ok", time.Since(started).Seconds())
	if report.Due > 0 || report.Late > 0 {
		c.logger.Info("dispatch run complete",
			"due", report.Due,
			"late", report.Late,
			"delivered", report.Delivered,
			"failed", report.Failed,
		)
	}
	return report, nil
}

func (c *Coordinator) processOne(ctx context.Context, r reminder.Reminder, now time.Time) Outcome {
	outcome := Outcome{ReminderID: r.ID, Channel: r.Channel}

	dispatchErr := c.notifier.Dispatch(ctx, r)
	if dispatchErr != nil {
		outcome.Error = dispatchErr.Error()
		c.logger.Error("reminder dispatch failed",
			"id", r.ID, "channel", r.Channel, "error", dispatchErr)
	}

	// The reminder is marked sent even when dispatch failed: one attempt per
	// reminder, never retried. A permanently broken channel must not spam
	// every subsequent tick.
	markErr := c.store.MarkSent(ctx, r.ID, now)
	if markErr != nil {
		if outcome.Error != "" {
			outcome.Error += "; "
		}
		outcome.Error += markErr.Error()
		c.logger.Error("reminder mark sent failed", "id", r.ID, "error", markErr)
	}

	outcome.Delivered = dispatchErr == nil && markErr == nil
	status := "delivered"
	if !outcome.Delivered {
		status = "failed"
	}
	c.metrics.ObserveReminder(string(r.Channel), status)
	return outcome
}
