package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var dueAt = time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

func meeting(lead int, sent bool) Reminder {
	return Reminder{Title: "Reunião", DueAt: dueAt, LeadMinutes: lead, Sent: sent}
}

func TestDueWindow(t *testing.T) {
	r := meeting(60, false)
	candidates := []Reminder{r}
	tolerance := 60 * time.Second

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exactly at fire time", dueAt.Add(-60 * time.Minute), 1},
		{"one minute early", dueAt.Add(-61 * time.Minute), 0},
		{"inside the window", dueAt.Add(-60 * time.Minute).Add(30 * time.Second), 1},
		{"at the window edge", dueAt.Add(-60 * time.Minute).Add(tolerance), 1},
		{"one second past the window", dueAt.Add(-60 * time.Minute).Add(tolerance + time.Second), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Due(tt.now, tolerance, candidates), tt.want)
		})
	}
}

func TestDueZeroLeadFiresAtDueTime(t *testing.T) {
	r := meeting(0, false)

	assert.Len(t, Due(dueAt, time.Minute, []Reminder{r}), 1)
	assert.Empty(t, Due(dueAt.Add(-time.Second), time.Minute, []Reminder{r}))
}

func TestDueNeverReturnsSent(t *testing.T) {
	r := meeting(30, true)

	for _, now := range []time.Time{
		dueAt.Add(-30 * time.Minute),
		dueAt,
		dueAt.Add(24 * time.Hour),
	} {
		assert.Empty(t, Due(now, time.Minute, []Reminder{r}))
	}
}

func TestDueDefaultsTolerance(t *testing.T) {
	r := meeting(0, false)

	assert.Len(t, Due(dueAt.Add(30*time.Second), 0, []Reminder{r}), 1)
	assert.Empty(t, Due(dueAt.Add(61*time.Second), 0, []Reminder{r}))
}

func TestDueMixedCandidates(t *testing.T) {
	now := dueAt.Add(-30 * time.Minute)
	candidates := []Reminder{
		meeting(30, false), // fires now
		meeting(30, true),  // already sent
		meeting(60, false), // fired half an hour ago, outside the window
		meeting(0, false),  // fires in half an hour
	}

	due := Due(now, time.Minute, candidates)
	assert.Len(t, due, 1)
	assert.Equal(t, 30, due[0].LeadMinutes)
}

func TestMissed(t *testing.T) {
	now := dueAt.Add(-30 * time.Minute)
	candidates := []Reminder{
		meeting(30, false), // due right now, not missed
		meeting(60, false), // window long gone
		meeting(90, true),  // old but sent, not missed
	}

	missed := Missed(now, time.Minute, candidates)
	assert.Len(t, missed, 1)
	assert.Equal(t, 60, missed[0].LeadMinutes)
}

func TestFireAt(t *testing.T) {
	r := meeting(30, false)
	assert.Equal(t, dueAt.Add(-30*time.Minute), r.FireAt())

	r = meeting(0, false)
	assert.Equal(t, dueAt, r.FireAt())
}
