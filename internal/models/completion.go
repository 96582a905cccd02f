package models

// Completion records that a habit was satisfied on a calendar day. Habits
// and completions are linked by id only; deleting a habit removes its
// completions but a completion never embeds its habit.
type Completion struct {
	ID          string `json:"id"`
	HabitID     string `json:"habit_id"`
	Date        string `json:"date"`         // YYYY-MM-DD day key
	CompletedAt string `json:"completed_at"` // RFC3339, when the toggle happened
	Count       int    `json:"count"`
}
