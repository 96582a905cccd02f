package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ritualhq/ritual/internal/dateutil"
	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/store"
)

// todayModel is the check-off view: active habits for a single day, with
// left/right stepping through recent days.
type todayModel struct {
	store  *store.Store
	width  int
	height int

	habits   []models.Habit
	done     map[string]bool
	progress store.Progress

	cursor    int
	dayOffset int // days before today being viewed
}

func newTodayModel(s *store.Store) todayModel {
	return todayModel{store: s, done: map[string]bool{}}
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t todayModel) day() string {
	return dateutil.Offset(dateutil.Today(), t.dayOffset)
}

type todayDataMsg struct {
	habits   []models.Habit
	done     map[string]bool
	progress store.Progress
}

func (t todayModel) refresh() tea.Cmd {
	day := t.day()
	return func() tea.Msg {
		habits := t.store.ActiveHabits()
		done := make(map[string]bool, len(habits))
		for _, h := range habits {
			done[h.ID] = t.store.IsCompletedOn(h.ID, day)
		}
		return todayDataMsg{habits: habits, done: done, progress: t.store.TodayProgress()}
	}
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		t.habits = msg.habits
		t.done = msg.done
		t.progress = msg.progress
		if t.cursor >= len(t.habits) {
			t.cursor = max(0, len(t.habits)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.habits)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Left):
			if t.dayOffset < 30 {
				t.dayOffset++
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Right):
			if t.dayOffset > 0 {
				t.dayOffset--
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Toggle):
			if len(t.habits) > 0 {
				h := t.habits[t.cursor]
				t.store.ToggleCompletion(h.ID, t.day())
				return t, t.refresh()
			}
		}
	}
	return t, nil
}

func (t todayModel) view() string {
	w := t.width - 4

	day := t.day()
	dayLabel := "Today"
	if t.dayOffset == 1 {
		dayLabel = "Yesterday"
	} else if t.dayOffset > 1 {
		dayLabel = day
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(dayLabel), "  ", mutedStyle.Render(day))

	if len(t.habits) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "",
				mutedStyle.Render("No active habits. Press 2 to add one.")))
	}

	var rows []string
	weekday := dateutil.Weekday(day)
	for i, h := range t.habits {
		mark := "░"
		style := lipgloss.NewStyle()
		switch {
		case t.done[h.ID]:
			mark = "█"
			style = doneStyle
		case !h.ScheduledOn(weekday):
			mark = "·"
			style = mutedStyle
		}

		line := fmt.Sprintf("%s %s %s", mark, h.Icon, h.Name)
		if h.CurrentStreak > 0 {
			line += streakStyle.Render(fmt.Sprintf("  🔥%d", h.CurrentStreak))
		}
		if i == t.cursor {
			line = selectedStyle.Render("▸ ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		rows = append(rows, line)
	}

	// The cached progress is for today; recount when stepping back.
	progress := t.progress
	if t.dayOffset != 0 {
		progress = store.Progress{}
		for _, h := range t.habits {
			if !h.ScheduledOn(weekday) {
				continue
			}
			progress.Total++
			if t.done[h.ID] {
				progress.Completed++
			}
		}
		if progress.Total > 0 {
			progress.Percentage = 100 * progress.Completed / progress.Total
		}
	}
	bar := renderProgressBar(progress, min(w-4, 40))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", strings.Join(rows, "\n"), "", bar))
}

func renderProgressBar(p store.Progress, width int) string {
	if width < 10 {
		width = 10
	}
	filled := 0
	if p.Total > 0 {
		filled = width * p.Completed / p.Total
	}
	bar := doneStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d (%d%%)", bar, p.Completed, p.Total, p.Percentage)
}
