// Package cli implements the kong command tree. Commands receive their
// collaborators through Context rather than package state, so tests can
// run them against an in-memory store.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/storage"
	"github.com/ritualhq/ritual/internal/store"
)

// Context carries the wired-up application into every command's Run.
type Context struct {
	Store *store.Store
	KV    storage.KV

	// SnapshotPath is the on-disk snapshot location when the file backend
	// is in use, empty otherwise. Backups need it.
	SnapshotPath string

	// ConfigDir is the directory logs and backups live under.
	ConfigDir string

	Debug bool
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma-separated list of weekday names or indices
// (0=Sunday..6=Saturday) into the target-day encoding habits use.
func ParseWeekdays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var days []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		d, ok := weekdayNames[part]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			d = num
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}

// FormatSchedule renders a habit's frequency rule for humans.
func FormatSchedule(h models.Habit) string {
	switch h.Frequency {
	case models.FrequencyWeekly:
		if len(h.TargetDays) == 0 {
			return "weekly (no days set)"
		}
		var names []string
		for _, d := range h.TargetDays {
			names = append(names, time.Weekday(d).String()[:3])
		}
		return "weekly on " + strings.Join(names, ",")
	case models.FrequencyDaily:
		return "daily"
	default:
		return string(h.Frequency)
	}
}

// resolveHabit finds a habit by name first, then by id, so commands accept
// either.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	if h, ok := ctx.Store.HabitByName(ref); ok {
		return h, nil
	}
	if h, ok := ctx.Store.Habit(ref); ok {
		return h, nil
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}
