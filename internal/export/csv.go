package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ritualhq/ritual/internal/models"
)

// ToCSV writes one row per completion, joined with its habit's name, plus
// habits that have no completions yet so the file reflects the whole
// collection.
func ToCSV(habits []models.Habit, completions []models.Completion, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Habit", "Frequency", "Date", "Completed At", "Count", "Current Streak", "Best Streak"}); err != nil {
		return err
	}

	names := make(map[string]models.Habit, len(habits))
	counted := make(map[string]int)
	for _, h := range habits {
		names[h.ID] = h
	}

	for _, c := range completions {
		h, ok := names[c.HabitID]
		if !ok {
			continue
		}
		counted[c.HabitID]++
		row := []string{
			h.Name,
			string(h.Frequency),
			c.Date,
			c.CompletedAt,
			strconv.Itoa(c.Count),
			strconv.Itoa(h.CurrentStreak),
			strconv.Itoa(h.BestStreak),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, h := range habits {
		if counted[h.ID] > 0 {
			continue
		}
		row := []string{h.Name, string(h.Frequency), "", "", "0",
			strconv.Itoa(h.CurrentStreak), strconv.Itoa(h.BestStreak)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
