package achievements

import (
	"testing"

	"github.com/ritualhq/ritual/internal/models"
)

func statusByID(t *testing.T, statuses []Status, id string) Status {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no status with id %q", id)
	return Status{}
}

func TestEvaluateEmptyState(t *testing.T) {
	statuses := Evaluate(nil, nil)
	if len(statuses) != len(Catalog()) {
		t.Fatalf("got %d statuses, want %d", len(statuses), len(Catalog()))
	}
	if got := CountUnlocked(statuses); got != 0 {
		t.Errorf("CountUnlocked = %d on empty state", got)
	}
	if got := TotalPoints(statuses); got != 0 {
		t.Errorf("TotalPoints = %d on empty state", got)
	}
}

func TestEvaluateStreakThresholds(t *testing.T) {
	habits := []models.Habit{{ID: "h1", BestStreak: 7}}

	statuses := Evaluate(habits, nil)
	if s := statusByID(t, statuses, "first_spark"); !s.Unlocked {
		t.Error("3-day badge locked at best streak 7")
	}
	if s := statusByID(t, statuses, "week_strong"); !s.Unlocked {
		t.Error("7-day badge locked at best streak 7")
	}
	if s := statusByID(t, statuses, "fortnight"); s.Unlocked {
		t.Error("14-day badge unlocked at best streak 7")
	} else if s.Progress != 50 {
		t.Errorf("fortnight progress = %d, want 50", s.Progress)
	}
}

func TestEvaluatePerfectDays(t *testing.T) {
	archived := "2024-01-01T00:00:00Z"
	habits := []models.Habit{
		{ID: "a"},
		{ID: "b"},
		{ID: "c", ArchivedAt: &archived}, // does not count toward perfection
	}
	completions := []models.Completion{
		{HabitID: "a", Date: "2024-01-01"},
		{HabitID: "b", Date: "2024-01-01"},
		{HabitID: "a", Date: "2024-01-02"},
	}

	statuses := Evaluate(habits, completions)
	if s := statusByID(t, statuses, "perfect_day"); !s.Unlocked {
		t.Error("perfect_day locked despite a fully completed day")
	}
	if s := statusByID(t, statuses, "perfect_week"); s.Unlocked {
		t.Error("perfect_week unlocked with one perfect day")
	}
}

func TestEvaluateMilestones(t *testing.T) {
	habits := []models.Habit{{ID: "a"}}
	completions := []models.Completion{{HabitID: "a", Date: "2024-01-01"}}

	statuses := Evaluate(habits, completions)
	if s := statusByID(t, statuses, "habit_former"); !s.Unlocked {
		t.Error("habit_former locked with one habit")
	}
	if s := statusByID(t, statuses, "first_check"); !s.Unlocked {
		t.Error("first_check locked with one completion")
	}
	if s := statusByID(t, statuses, "collector"); s.Unlocked {
		t.Error("collector unlocked with one habit")
	}

	// habit_former (5) + first_check (5) + perfect_day (20): the single
	// completion also makes 2024-01-01 a perfect day for one active habit.
	if got := TotalPoints(statuses); got != 30 {
		t.Errorf("TotalPoints = %d, want 30", got)
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Catalog() {
		if seen[def.ID] {
			t.Errorf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Threshold < 1 {
			t.Errorf("achievement %q has threshold %d", def.ID, def.Threshold)
		}
	}
}
