// Package streak derives streak state from a habit's schedule and its raw
// completion records. Everything here is pure: callers pass the reference
// day explicitly and the store merges results back into cached fields.
package streak

import (
	"github.com/ritualhq/ritual/internal/dateutil"
	"github.com/ritualhq/ritual/internal/models"
)

// lookbackDays bounds the backward scan. Streaks longer than a year are
// truncated to this ceiling.
const lookbackDays = 365

// Result is the derived streak state for one habit.
type Result struct {
	Current        int
	Best           int
	LastCompleted  string // day key of the most recent completion, "" if none
	CompletedToday bool   // completed on the reference day
}

// Calculate walks backward from the reference day, counting consecutive
// scheduled days with completions. Unscheduled days neither extend nor
// break a streak. An incomplete reference day does not break the current
// streak: the streak only dies once a scheduled day has fully elapsed
// without a completion.
func Calculate(habit models.Habit, completions []models.Completion, reference string) Result {
	completed := make(map[string]struct{}, len(completions))
	for _, c := range completions {
		completed[c.Date] = struct{}{}
	}

	var res Result
	temp := 0
	broken := false
	check := reference

	for i := 0; i < lookbackDays; i++ {
		if habit.ScheduledOn(dateutil.Weekday(check)) {
			if _, ok := completed[check]; ok {
				if !broken {
					res.Current++
				}
				temp++
				if res.LastCompleted == "" {
					res.LastCompleted = check
				}
			} else if check != reference {
				broken = true
				if temp > res.Best {
					res.Best = temp
				}
				temp = 0
			}
		}
		check = dateutil.Offset(check, 1)
	}

	if temp > res.Best {
		res.Best = temp
	}
	if res.Current > res.Best {
		res.Best = res.Current
	}
	_, res.CompletedToday = completed[reference]

	return res
}

// IsActive is a cheap liveness check used for badges: the streak is alive
// if the habit was completed today, or completed yesterday while today is
// a scheduled day. It avoids the full scan and never feeds persisted
// streak values.
func IsActive(habit models.Habit, completions []models.Completion) bool {
	today := dateutil.Today()
	yesterday := dateutil.Yesterday()

	for _, c := range completions {
		if c.Date == today {
			return true
		}
	}
	if !habit.ScheduledOn(dateutil.Weekday(today)) {
		return false
	}
	for _, c := range completions {
		if c.Date == yesterday {
			return true
		}
	}
	return false
}
