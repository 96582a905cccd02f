// Package achievements evaluates a static badge catalog against the
// current habit and completion state. Evaluation is pure: the caller
// passes store snapshots and gets each definition back with its unlocked
// flag and progress.
package achievements

import (
	"math"

	"github.com/ritualhq/ritual/internal/models"
)

type Category string

const (
	CategoryStreak      Category = "streak"
	CategoryCompletion  Category = "completion"
	CategoryConsistency Category = "consistency"
	CategoryMilestone   Category = "milestone"
)

type Requirement string

const (
	RequirementStreakDays       Requirement = "streak_days"
	RequirementTotalCompletions Requirement = "total_completions"
	RequirementPerfectDays      Requirement = "perfect_days"
	RequirementHabitsCreated    Requirement = "habits_created"
	RequirementActiveDays       Requirement = "active_days"
)

// Definition is one entry in the static catalog.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Requirement Requirement
	Threshold   int
	Points      int
}

// Status is a definition with its evaluated state.
type Status struct {
	Definition
	Unlocked bool
	Progress int // 0-100
}

// Catalog returns every achievement the app knows about.
func Catalog() []Definition {
	return []Definition{
		{ID: "first_spark", Name: "First Spark", Description: "Reach a 3-day streak", Icon: "✨", Category: CategoryStreak, Requirement: RequirementStreakDays, Threshold: 3, Points: 10},
		{ID: "week_strong", Name: "Week Strong", Description: "Reach a 7-day streak", Icon: "🔥", Category: CategoryStreak, Requirement: RequirementStreakDays, Threshold: 7, Points: 25},
		{ID: "fortnight", Name: "Fortnight", Description: "Reach a 14-day streak", Icon: "⚡", Category: CategoryStreak, Requirement: RequirementStreakDays, Threshold: 14, Points: 50},
		{ID: "monthly_devotion", Name: "Monthly Devotion", Description: "Reach a 30-day streak", Icon: "🌕", Category: CategoryStreak, Requirement: RequirementStreakDays, Threshold: 30, Points: 100},
		{ID: "centurion", Name: "Centurion", Description: "Reach a 100-day streak", Icon: "🏛️", Category: CategoryStreak, Requirement: RequirementStreakDays, Threshold: 100, Points: 300},

		{ID: "first_check", Name: "First Check", Description: "Record 1 completion", Icon: "✓", Category: CategoryCompletion, Requirement: RequirementTotalCompletions, Threshold: 1, Points: 5},
		{ID: "fifty_checks", Name: "Fifty Checks", Description: "Record 50 completions", Icon: "📋", Category: CategoryCompletion, Requirement: RequirementTotalCompletions, Threshold: 50, Points: 50},
		{ID: "double_century", Name: "Double Century", Description: "Record 200 completions", Icon: "🏅", Category: CategoryCompletion, Requirement: RequirementTotalCompletions, Threshold: 200, Points: 150},

		{ID: "perfect_day", Name: "Perfect Day", Description: "Complete every habit in one day", Icon: "💯", Category: CategoryConsistency, Requirement: RequirementPerfectDays, Threshold: 1, Points: 20},
		{ID: "perfect_week", Name: "Perfect Week", Description: "7 perfect days", Icon: "🌟", Category: CategoryConsistency, Requirement: RequirementPerfectDays, Threshold: 7, Points: 75},
		{ID: "regular", Name: "Regular", Description: "Active on 30 different days", Icon: "📆", Category: CategoryConsistency, Requirement: RequirementActiveDays, Threshold: 30, Points: 60},

		{ID: "habit_former", Name: "Habit Former", Description: "Create your first habit", Icon: "🌱", Category: CategoryMilestone, Requirement: RequirementHabitsCreated, Threshold: 1, Points: 5},
		{ID: "collector", Name: "Collector", Description: "Create 5 habits", Icon: "🗂️", Category: CategoryMilestone, Requirement: RequirementHabitsCreated, Threshold: 5, Points: 25},
	}
}

// Evaluate returns the status of every catalog entry for the given state.
func Evaluate(habits []models.Habit, completions []models.Completion) []Status {
	m := measure(habits, completions)

	statuses := make([]Status, 0, len(Catalog()))
	for _, def := range Catalog() {
		value := 0
		switch def.Requirement {
		case RequirementStreakDays:
			value = m.bestStreak
		case RequirementTotalCompletions:
			value = m.totalCompletions
		case RequirementPerfectDays:
			value = m.perfectDays
		case RequirementHabitsCreated:
			value = m.habitsCreated
		case RequirementActiveDays:
			value = m.activeDays
		}

		progress := 100
		if def.Threshold > 0 && value < def.Threshold {
			progress = int(math.Round(float64(value) / float64(def.Threshold) * 100))
		}
		statuses = append(statuses, Status{
			Definition: def,
			Unlocked:   value >= def.Threshold,
			Progress:   progress,
		})
	}
	return statuses
}

// CountUnlocked returns how many of the statuses are unlocked.
func CountUnlocked(statuses []Status) int {
	n := 0
	for _, s := range statuses {
		if s.Unlocked {
			n++
		}
	}
	return n
}

// TotalPoints sums the points of unlocked achievements.
func TotalPoints(statuses []Status) int {
	total := 0
	for _, s := range statuses {
		if s.Unlocked {
			total += s.Points
		}
	}
	return total
}

type metrics struct {
	bestStreak       int
	totalCompletions int
	perfectDays      int
	habitsCreated    int
	activeDays       int
}

func measure(habits []models.Habit, completions []models.Completion) metrics {
	m := metrics{
		totalCompletions: len(completions),
		habitsCreated:    len(habits),
	}

	for _, h := range habits {
		if h.BestStreak > m.bestStreak {
			m.bestStreak = h.BestStreak
		}
	}

	active := 0
	for _, h := range habits {
		if !h.Archived() {
			active++
		}
	}

	// A perfect day is one where every currently active habit was done.
	byDay := make(map[string]map[string]struct{})
	for _, c := range completions {
		if byDay[c.Date] == nil {
			byDay[c.Date] = make(map[string]struct{})
		}
		byDay[c.Date][c.HabitID] = struct{}{}
	}
	m.activeDays = len(byDay)
	if active > 0 {
		for _, done := range byDay {
			if len(done) >= active {
				m.perfectDays++
			}
		}
	}

	return m
}
