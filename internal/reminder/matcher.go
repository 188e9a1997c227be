package reminder

import "time"

// DefaultTolerance is the width of the due-matching window. It must be at
// least as large as the dispatch tick interval, or a reminder whose fire time
// falls between two ticks is never matched.
const DefaultTolerance = 60 * time.Second

// Due returns the candidates that should be dispatched at now: unsent
// reminders whose fire time is at most tolerance in the past. The window
// bounds latency only; duplicate suppression comes from the sent flag.
func Due(now time.Time, tolerance time.Duration, candidates []Reminder) []Reminder {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var due []Reminder
	for _, r := range candidates {
		if r.Sent {
			continue
		}
		delta := now.Sub(r.FireAt())
		if delta >= 0 && delta <= tolerance {
			due = append(due, r)
		}
	}
	return due
}

// Missed returns the unsent candidates whose fire time has already slipped
// past the matching window, e.g. because the dispatcher was down. The
// coordinator delivers them late, once, and surfaces them in logs and metrics.
func Missed(now time.Time, tolerance time.Duration, candidates []Reminder) []Reminder {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var missed []Reminder
	for _, r := range candidates {
		if r.Sent {
			continue
		}
		if now.Sub(r.FireAt()) > tolerance {
			missed = append(missed, r)
		}
	}
	return missed
}
