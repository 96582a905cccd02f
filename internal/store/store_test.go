package store

import (
	"encoding/json"
	"testing"

	"github.com/ritualhq/ritual/internal/constants"
	"github.com/ritualhq/ritual/internal/dateutil"
	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := New(kv)
	s.Hydrate()
	return s, kv
}

func addDaily(t *testing.T, s *Store, name string) models.Habit {
	t.Helper()
	return s.AddHabit(models.CreateHabitInput{
		Name:      name,
		Icon:      "📖",
		Color:     "#4A90D9",
		Frequency: models.FrequencyDaily,
	})
}

// daysAgo returns the day key n days before today.
func daysAgo(n int) string {
	return dateutil.Offset(dateutil.Today(), n)
}

func TestAddHabit(t *testing.T) {
	s, kv := newTestStore(t)

	h := addDaily(t, s, "Read")
	if h.ID == "" {
		t.Fatal("AddHabit assigned no id")
	}
	if h.CreatedAt == "" || h.UpdatedAt != h.CreatedAt {
		t.Errorf("timestamps: created=%q updated=%q", h.CreatedAt, h.UpdatedAt)
	}
	if h.CurrentStreak != 0 || h.BestStreak != 0 || h.TotalCompletions != 0 {
		t.Error("cached fields should start at zero")
	}
	if h.TargetCount != 1 {
		t.Errorf("TargetCount = %d, want default 1", h.TargetCount)
	}

	got, ok := s.Habit(h.ID)
	if !ok || got.Name != "Read" {
		t.Fatalf("Habit(%q) = %+v, %v", h.ID, got, ok)
	}
	if kv.SetCalls == 0 {
		t.Error("AddHabit did not persist")
	}
}

func TestUpdateHabitPartialMerge(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")

	name := "Read books"
	count := 2
	if !s.UpdateHabit(h.ID, models.UpdateHabitInput{Name: &name, TargetCount: &count}) {
		t.Fatal("UpdateHabit returned false for existing habit")
	}

	got, _ := s.Habit(h.ID)
	if got.Name != "Read books" || got.TargetCount != 2 {
		t.Errorf("merged habit = %+v", got)
	}
	if got.Icon != "📖" {
		t.Error("untouched fields must survive a partial update")
	}
	if got.ID != h.ID || got.CreatedAt != h.CreatedAt {
		t.Error("id and created_at are immutable")
	}

	if s.UpdateHabit("missing", models.UpdateHabitInput{Name: &name}) {
		t.Error("UpdateHabit on unknown id should report false")
	}
}

func TestToggleIdempotenceUnderDoubleApplication(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")
	day := daysAgo(0)

	before, _ := s.Habit(h.ID)
	beforeCount := len(s.CompletionsForHabit(h.ID))

	s.ToggleCompletion(h.ID, day)
	s.ToggleCompletion(h.ID, day)

	after, _ := s.Habit(h.ID)
	if got := len(s.CompletionsForHabit(h.ID)); got != beforeCount {
		t.Errorf("completion count = %d after double toggle, want %d", got, beforeCount)
	}
	if after.CurrentStreak != before.CurrentStreak {
		t.Errorf("CurrentStreak = %d, want %d", after.CurrentStreak, before.CurrentStreak)
	}
	if after.TotalCompletions != before.TotalCompletions {
		t.Errorf("TotalCompletions = %d, want %d", after.TotalCompletions, before.TotalCompletions)
	}
}

func TestAtMostOneCompletionPerHabitDate(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")
	day := daysAgo(1)

	for i := 0; i < 5; i++ {
		s.ToggleCompletion(h.ID, day)
	}

	n := 0
	for _, c := range s.Completions() {
		if c.HabitID == h.ID && c.Date == day {
			n++
		}
	}
	if n > 1 {
		t.Fatalf("%d completions for one (habit, date) pair", n)
	}
}

func TestToggleUnknownHabitIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	if s.ToggleCompletion("missing", daysAgo(0)) {
		t.Error("toggle on unknown habit should report false")
	}
	if got := len(s.Completions()); got != 0 {
		t.Errorf("%d completions created for unknown habit", got)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")
	other := addDaily(t, s, "Run")
	s.ToggleCompletion(h.ID, daysAgo(0))
	s.ToggleCompletion(h.ID, daysAgo(1))
	s.ToggleCompletion(other.ID, daysAgo(0))

	if !s.DeleteHabit(h.ID) {
		t.Fatal("DeleteHabit returned false")
	}

	if _, ok := s.Habit(h.ID); ok {
		t.Error("habit still present after delete")
	}
	for _, c := range s.Completions() {
		if c.HabitID == h.ID {
			t.Error("orphaned completion survived cascade delete")
		}
	}
	if got := len(s.CompletionsForHabit(other.ID)); got != 1 {
		t.Errorf("other habit's completions = %d, want 1", got)
	}
}

func TestStreakScenarioUnbrokenRun(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")

	for i := 0; i < 3; i++ {
		s.ToggleCompletion(h.ID, daysAgo(i))
	}

	got, _ := s.Habit(h.ID)
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
	if got.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", got.BestStreak)
	}
	if got.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", got.TotalCompletions)
	}
}

func TestStreakScenarioGap(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")

	// Run of two, a two-day gap, then today.
	s.ToggleCompletion(h.ID, daysAgo(4))
	s.ToggleCompletion(h.ID, daysAgo(3))
	s.ToggleCompletion(h.ID, daysAgo(0))

	got, _ := s.Habit(h.ID)
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", got.BestStreak)
	}
}

func TestStreakScenarioTodayGrace(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")

	// Completed the last three days but not yet today.
	for i := 1; i <= 3; i++ {
		s.ToggleCompletion(h.ID, daysAgo(i))
	}

	got, _ := s.Habit(h.ID)
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 (today not yet broken)", got.CurrentStreak)
	}
}

func TestBestStreakMonotonic(t *testing.T) {
	s, _ := newTestStore(t)
	h := addDaily(t, s, "Read")

	best := 0
	check := func() {
		t.Helper()
		got, _ := s.Habit(h.ID)
		if got.BestStreak < best {
			t.Fatalf("BestStreak decreased: %d -> %d", best, got.BestStreak)
		}
		if got.BestStreak < got.CurrentStreak {
			t.Fatalf("BestStreak (%d) < CurrentStreak (%d)", got.BestStreak, got.CurrentStreak)
		}
		best = got.BestStreak
	}

	for i := 5; i >= 0; i-- {
		s.ToggleCompletion(h.ID, daysAgo(i))
		check()
	}
	// Untoggling history shrinks the recomputed best but not the ratchet.
	s.ToggleCompletion(h.ID, daysAgo(3))
	check()
	s.ToggleCompletion(h.ID, daysAgo(2))
	check()
	s.RecalculateAll()
	check()

	got, _ := s.Habit(h.ID)
	if got.BestStreak != 6 {
		t.Errorf("BestStreak = %d, want ratcheted 6", got.BestStreak)
	}
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
}

func TestTodayProgress(t *testing.T) {
	s, _ := newTestStore(t)
	a := addDaily(t, s, "Read")
	addDaily(t, s, "Run")

	s.ToggleCompletion(a.ID, daysAgo(0))

	p := s.TodayProgress()
	if p.Total != 2 || p.Completed != 1 || p.Percentage != 50 {
		t.Errorf("TodayProgress = %+v, want {2 1 50}", p)
	}
}

func TestTodayProgressExcludesArchived(t *testing.T) {
	s, _ := newTestStore(t)
	a := addDaily(t, s, "Read")
	b := addDaily(t, s, "Run")

	s.ToggleCompletion(a.ID, daysAgo(0))
	s.ArchiveHabit(b.ID)

	p := s.TodayProgress()
	if p.Total != 1 || p.Completed != 1 || p.Percentage != 100 {
		t.Errorf("TodayProgress = %+v, want {1 1 100}", p)
	}

	if len(s.ActiveHabits()) != 1 {
		t.Error("archived habit still in active set")
	}
	if len(s.Habits()) != 2 {
		t.Error("archived habit should remain stored")
	}

	s.UnarchiveHabit(b.ID)
	if len(s.ActiveHabits()) != 2 {
		t.Error("unarchived habit missing from active set")
	}
}

func TestQueries(t *testing.T) {
	s, _ := newTestStore(t)
	a := addDaily(t, s, "Read")
	b := addDaily(t, s, "Run")
	day := daysAgo(2)

	s.ToggleCompletion(a.ID, day)
	s.ToggleCompletion(b.ID, day)
	s.ToggleCompletion(a.ID, daysAgo(1))

	if got := len(s.CompletionsForHabit(a.ID)); got != 2 {
		t.Errorf("CompletionsForHabit = %d, want 2", got)
	}
	if got := len(s.CompletionsForDate(day)); got != 2 {
		t.Errorf("CompletionsForDate = %d, want 2", got)
	}
	if !s.IsCompletedOn(a.ID, day) {
		t.Error("IsCompletedOn = false, want true")
	}
	if s.IsCompletedOn(b.ID, daysAgo(1)) {
		t.Error("IsCompletedOn = true, want false")
	}
	if _, ok := s.HabitByName("Run"); !ok {
		t.Error("HabitByName failed")
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()

	s1 := New(kv)
	s1.Hydrate()
	h := s1.AddHabit(models.CreateHabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	s1.ToggleCompletion(h.ID, daysAgo(1))
	s1.ToggleCompletion(h.ID, daysAgo(0))

	s2 := New(kv)
	if s2.Hydrated() {
		t.Error("store hydrated before Hydrate")
	}
	s2.Hydrate()
	if !s2.Hydrated() {
		t.Error("store not hydrated after Hydrate")
	}

	got, ok := s2.Habit(h.ID)
	if !ok {
		t.Fatal("habit lost across hydration")
	}
	if got.CurrentStreak != 2 || got.TotalCompletions != 2 {
		t.Errorf("rehydrated habit = %+v", got)
	}
}

func TestHydrateRepairsStaleStreaks(t *testing.T) {
	// Persist a snapshot whose cached fields no longer match its
	// completion log, the way a date-boundary crossing leaves them.
	kv := storage.NewMemoryKV()
	snap := snapshot{
		Habits: []models.Habit{{
			ID:            "h1",
			Name:          "Read",
			Frequency:     models.FrequencyDaily,
			CurrentStreak: 99,
			BestStreak:    2,
		}},
		Completions: []models.Completion{
			{ID: "c1", HabitID: "h1", Date: daysAgo(1), Count: 1},
			{ID: "c2", HabitID: "h1", Date: daysAgo(2), Count: 1},
		},
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(constants.StateKey, data); err != nil {
		t.Fatal(err)
	}

	s := New(kv)
	s.Hydrate()

	got, _ := s.Habit("h1")
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d after hydration repair, want 2", got.CurrentStreak)
	}
	if got.TotalCompletions != 2 {
		t.Errorf("TotalCompletions = %d, want 2", got.TotalCompletions)
	}
	if got.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", got.BestStreak)
	}
}

func TestHydrateCorruptSnapshot(t *testing.T) {
	kv := storage.NewMemoryKV()
	if err := kv.Set(constants.StateKey, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	s := New(kv)
	s.Hydrate()

	if !s.Hydrated() {
		t.Error("hydration must complete despite corrupt snapshot")
	}
	if len(s.Habits()) != 0 {
		t.Error("corrupt snapshot should hydrate as empty state")
	}
}

func TestPersistenceFailureDoesNotBreakMutations(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := New(kv)
	s.Hydrate()
	kv.FailWrites = true

	h := s.AddHabit(models.CreateHabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	if !s.ToggleCompletion(h.ID, daysAgo(0)) {
		t.Fatal("mutation failed because of storage")
	}

	got, ok := s.Habit(h.ID)
	if !ok || got.CurrentStreak != 1 {
		t.Errorf("in-memory state not authoritative: %+v, %v", got, ok)
	}
}

func TestNoOpsOnUnknownIDs(t *testing.T) {
	s, _ := newTestStore(t)

	if s.DeleteHabit("missing") {
		t.Error("DeleteHabit on unknown id should report false")
	}
	if s.ArchiveHabit("missing") {
		t.Error("ArchiveHabit on unknown id should report false")
	}
	if s.UnarchiveHabit("missing") {
		t.Error("UnarchiveHabit on unknown id should report false")
	}
	if s.RecalculateStreaks("missing") {
		t.Error("RecalculateStreaks on unknown id should report false")
	}
}
