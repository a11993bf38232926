package scheduling

import (
	"context"
	"time"
)

// IsLastWeekdayOfMonth reports whether t is the month's final occurrence of
// its weekday, i.e. the same weekday seven days later falls in the next
// month.
func IsLastWeekdayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 7).Month() != t.Month()
}

// GateLastWeekday wraps a job so it only runs when the tick lands on the
// month's last occurrence of its weekday. Skipped ticks succeed silently.
func GateLastWeekday(loc *time.Location, job Job) Job {
	return func(ctx context.Context) error {
		if !IsLastWeekdayOfMonth(time.Now().In(loc)) {
			return nil
		}
		return job(ctx)
	}
}
