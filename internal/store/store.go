// Package store owns the in-memory habit and completion collections and
// their persistence lifecycle. It is the only component that mutates them:
// everything else reads through queries and selectors or calls the
// mutation methods here.
package store

import (
	"encoding/json"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/ritualhq/ritual/internal/constants"
	"github.com/ritualhq/ritual/internal/dateutil"
	"github.com/ritualhq/ritual/internal/logger"
	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/storage"
	"github.com/ritualhq/ritual/internal/streak"
)

// snapshot is the persisted state layout, one JSON document under one key.
type snapshot struct {
	Habits      []models.Habit      `json:"habits"`
	Completions []models.Completion `json:"completions"`
}

// Progress summarizes today's completion state over active habits.
type Progress struct {
	Total      int
	Completed  int
	Percentage int
}

// Store is the domain state container. Construct one per process (or per
// test) with New; there is no package-level instance.
type Store struct {
	mu          sync.Mutex
	kv          storage.KV
	habits      []models.Habit
	completions []models.Completion
	hydrated    bool
}

// New creates a store over the given persistence backend. Call Hydrate
// before reading; pre-hydration reads are provisional and empty.
func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Hydrate loads the persisted snapshot and recomputes every habit's streak
// fields to repair any drift from the time the app was closed (a missing
// or corrupt snapshot hydrates as empty state). It always completes: the
// in-memory store is usable regardless of what the backend returned.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(constants.StateKey)
	if err != nil {
		logger.Warn("Failed to load snapshot, starting empty", "error", err)
	}

	if len(data) > 0 {
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.Warn("Corrupt snapshot, starting empty", "error", err)
		} else {
			s.habits = snap.Habits
			s.completions = snap.Completions
		}
	}

	s.hydrated = true
	s.recalculateAll()
	s.persist()
}

// Hydrated reports whether the persisted snapshot has been loaded.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// AddHabit creates a habit from caller input: fresh id, audit timestamps,
// zeroed cached fields. Returns the stored habit.
func (s *Store) AddHabit(input models.CreateHabitInput) models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := dateutil.Timestamp()
	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		Frequency:   input.Frequency,
		TargetDays:  input.TargetDays,
		TargetCount: input.TargetCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if habit.TargetCount < 1 {
		habit.TargetCount = 1
	}

	s.habits = append(s.habits, habit)
	s.persist()
	return habit
}

// UpdateHabit merges non-nil fields into the habit and refreshes
// UpdatedAt. ID and CreatedAt are immutable. Returns false (and does
// nothing) when the id is unknown.
func (s *Store) UpdateHabit(id string, updates models.UpdateHabitInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return false
	}

	h := &s.habits[i]
	if updates.Name != nil {
		h.Name = *updates.Name
	}
	if updates.Description != nil {
		h.Description = *updates.Description
	}
	if updates.Icon != nil {
		h.Icon = *updates.Icon
	}
	if updates.Color != nil {
		h.Color = *updates.Color
	}
	if updates.Frequency != nil {
		h.Frequency = *updates.Frequency
	}
	if updates.TargetDays != nil {
		h.TargetDays = *updates.TargetDays
	}
	if updates.TargetCount != nil && *updates.TargetCount >= 1 {
		h.TargetCount = *updates.TargetCount
	}
	h.UpdatedAt = dateutil.Timestamp()

	s.persist()
	return true
}

// DeleteHabit removes the habit and every completion referencing it, as
// one state transition.
func (s *Store) DeleteHabit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return false
	}

	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	kept := s.completions[:0]
	for _, c := range s.completions {
		if c.HabitID != id {
			kept = append(kept, c)
		}
	}
	s.completions = kept

	s.persist()
	return true
}

// ArchiveHabit hides the habit from active views without removing data.
func (s *Store) ArchiveHabit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return false
	}

	now := dateutil.Timestamp()
	s.habits[i].ArchivedAt = &now
	s.habits[i].UpdatedAt = now
	s.persist()
	return true
}

// UnarchiveHabit returns an archived habit to active views.
func (s *Store) UnarchiveHabit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return false
	}

	s.habits[i].ArchivedAt = nil
	s.habits[i].UpdatedAt = dateutil.Timestamp()
	s.persist()
	return true
}

// ToggleCompletion flips the completion record for (habit, date): creates
// one when absent, deletes it when present. The date defaults to today.
// The habit's cached streak fields are recomputed before the call returns,
// so they are never observable stale relative to the completion set.
func (s *Store) ToggleCompletion(habitID, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.habitIndex(habitID) < 0 {
		return false
	}
	if date == "" {
		date = dateutil.Today()
	}

	found := false
	for i, c := range s.completions {
		if c.HabitID == habitID && c.Date == date {
			s.completions = append(s.completions[:i], s.completions[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.completions = append(s.completions, models.Completion{
			ID:          uuid.New().String(),
			HabitID:     habitID,
			Date:        date,
			CompletedAt: dateutil.Timestamp(),
			Count:       1,
		})
	}

	s.recalculate(habitID)
	s.persist()
	return true
}

// RecalculateStreaks recomputes one habit's cached streak fields from its
// completions.
func (s *Store) RecalculateStreaks(habitID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.habitIndex(habitID) < 0 {
		return false
	}
	s.recalculate(habitID)
	s.persist()
	return true
}

// RecalculateAll recomputes every habit's cached streak fields.
func (s *Store) RecalculateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalculateAll()
	s.persist()
}

// recalculate merges a fresh streak derivation into the habit's cached
// fields. BestStreak only ratchets upward across recomputes, so a later
// change to the derivation can never lower a historical best.
func (s *Store) recalculate(habitID string) {
	i := s.habitIndex(habitID)
	if i < 0 {
		return
	}

	var habitCompletions []models.Completion
	for _, c := range s.completions {
		if c.HabitID == habitID {
			habitCompletions = append(habitCompletions, c)
		}
	}

	res := streak.Calculate(s.habits[i], habitCompletions, dateutil.Today())
	s.habits[i].CurrentStreak = res.Current
	if res.Best > s.habits[i].BestStreak {
		s.habits[i].BestStreak = res.Best
	}
	s.habits[i].TotalCompletions = len(habitCompletions)
}

func (s *Store) recalculateAll() {
	for _, h := range s.habits {
		s.recalculate(h.ID)
	}
}

// Habit returns the habit with the given id.
func (s *Store) Habit(id string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return s.habits[i], true
}

// HabitByName returns the first habit with the given name.
func (s *Store) HabitByName(name string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.habits {
		if h.Name == name {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Habits returns a copy of all habits, archived included.
func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Habit(nil), s.habits...)
}

// ActiveHabits returns habits not archived, the set most views work over.
func (s *Store) ActiveHabits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []models.Habit
	for _, h := range s.habits {
		if !h.Archived() {
			active = append(active, h)
		}
	}
	return active
}

// CompletionsForHabit returns the habit's completion records.
func (s *Store) CompletionsForHabit(habitID string) []models.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Completion
	for _, c := range s.completions {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	return out
}

// CompletionsForDate returns every completion on the given day.
func (s *Store) CompletionsForDate(date string) []models.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Completion
	for _, c := range s.completions {
		if c.Date == date {
			out = append(out, c)
		}
	}
	return out
}

// Completions returns a copy of all completion records.
func (s *Store) Completions() []models.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Completion(nil), s.completions...)
}

// IsCompletedOn reports whether the habit has a completion for the day.
func (s *Store) IsCompletedOn(habitID, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.completions {
		if c.HabitID == habitID && c.Date == date {
			return true
		}
	}
	return false
}

// TodayProgress aggregates today's completion state over active habits.
func (s *Store) TodayProgress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := dateutil.Today()
	var p Progress
	for _, h := range s.habits {
		if h.Archived() {
			continue
		}
		p.Total++
		for _, c := range s.completions {
			if c.HabitID == h.ID && c.Date == today {
				p.Completed++
				break
			}
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

func (s *Store) habitIndex(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full snapshot, best effort. A failed write is logged
// and swallowed: in-memory state stays authoritative for the session and
// mutations never fail because of storage.
func (s *Store) persist() {
	snap := snapshot{Habits: s.habits, Completions: s.completions}
	if snap.Habits == nil {
		snap.Habits = []models.Habit{}
	}
	if snap.Completions == nil {
		snap.Completions = []models.Completion{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		logger.Warn("Failed to serialize snapshot", "error", err)
		return
	}
	if err := s.kv.Set(constants.StateKey, data); err != nil {
		logger.Warn("Failed to persist snapshot", "error", err)
	}
}
