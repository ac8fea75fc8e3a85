package domain

import (
	"fmt"
	"time"
)

// startTimeLayout is the wall-clock format tasks carry ("HH:MM", 24-hour).
const startTimeLayout = "15:04"

// Deadline resolves the instant after which the task is late: the task's
// calendar date anchored at its start time, plus its duration in minutes.
// Returns an error when StartTime is not a valid "HH:MM" value.
func (t *Task) Deadline() (time.Time, error) {
	clock, err := time.Parse(startTimeLayout, t.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("task %s: invalid start time %q: %w", t.ID, t.StartTime, err)
	}

	start := time.Date(
		t.Date.Year(), t.Date.Month(), t.Date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		t.Date.Location(),
	)
	return start.Add(time.Duration(t.Duration) * time.Minute), nil
}

// StartOfDay truncates an instant to midnight in its own location.
func StartOfDay(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
}
