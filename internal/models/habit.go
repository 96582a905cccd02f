package models

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Habit is a recurring practice the user tracks for completion.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Frequency   Frequency `json:"frequency"`
	TargetDays  []int     `json:"target_days,omitempty"` // 0=Sunday..6=Saturday, weekly only
	TargetCount int       `json:"target_count"`          // times per scheduled day, informational
	CreatedAt   string    `json:"created_at"`            // RFC3339
	UpdatedAt   string    `json:"updated_at"`            // RFC3339
	ArchivedAt  *string   `json:"archived_at,omitempty"` // RFC3339, soft delete

	// Cached values maintained by the store's streak recompute; CRUD never
	// touches them directly.
	CurrentStreak    int `json:"current_streak"`
	BestStreak       int `json:"best_streak"`
	TotalCompletions int `json:"total_completions"`
}

// Archived reports whether the habit is hidden from active views.
func (h Habit) Archived() bool {
	return h.ArchivedAt != nil
}

// ScheduledOn reports whether the habit's frequency rule requires action on
// the given day key. Unknown frequencies fail open so a habit never
// silently stops being tracked.
func (h Habit) ScheduledOn(weekday int) bool {
	switch h.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		for _, d := range h.TargetDays {
			if d == weekday {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// CreateHabitInput carries the caller-supplied fields for a new habit.
// Identity, timestamps, and cached streak fields are assigned by the store.
type CreateHabitInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Frequency   Frequency `json:"frequency"`
	TargetDays  []int     `json:"target_days,omitempty"`
	TargetCount int       `json:"target_count"`
}

// UpdateHabitInput is a partial update; nil fields are left untouched.
// ID and CreatedAt are not updatable.
type UpdateHabitInput struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Icon        *string    `json:"icon,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Frequency   *Frequency `json:"frequency,omitempty"`
	TargetDays  *[]int     `json:"target_days,omitempty"`
	TargetCount *int       `json:"target_count,omitempty"`
}
