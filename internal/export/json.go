package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ritualhq/ritual/internal/models"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	HabitCount int         `json:"habit_count"`
	Habits     []jsonHabit `json:"habits"`
}

type jsonHabit struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Frequency        string   `json:"frequency"`
	Archived         bool     `json:"archived"`
	CurrentStreak    int      `json:"current_streak"`
	BestStreak       int      `json:"best_streak"`
	TotalCompletions int      `json:"total_completions"`
	CompletedDates   []string `json:"completed_dates"`
}

// ToJSON writes a self-contained export: each habit with its full list of
// completed dates.
func ToJSON(habits []models.Habit, completions []models.Completion, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		HabitCount: len(habits),
	}

	dates := make(map[string][]string)
	for _, c := range completions {
		dates[c.HabitID] = append(dates[c.HabitID], c.Date)
	}

	for _, h := range habits {
		out.Habits = append(out.Habits, jsonHabit{
			Name:             h.Name,
			Description:      h.Description,
			Frequency:        string(h.Frequency),
			Archived:         h.Archived(),
			CurrentStreak:    h.CurrentStreak,
			BestStreak:       h.BestStreak,
			TotalCompletions: h.TotalCompletions,
			CompletedDates:   dates[h.ID],
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
