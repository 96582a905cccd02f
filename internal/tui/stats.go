package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ritualhq/ritual/internal/achievements"
	"github.com/ritualhq/ritual/internal/dateutil"
	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/store"
)

// statsModel shows streak standings, a week of completion counts, and the
// achievement ledger.
type statsModel struct {
	store  *store.Store
	width  int
	height int

	habits   []models.Habit
	statuses []achievements.Status
	chart    barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	habits   []models.Habit
	statuses []achievements.Status
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits := m.store.Habits()
		sort.Slice(habits, func(i, j int) bool {
			return habits[i].CurrentStreak > habits[j].CurrentStreak
		})
		statuses := achievements.Evaluate(m.store.Habits(), m.store.Completions())
		return statsDataMsg{habits: habits, statuses: statuses}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.habits = msg.habits
		m.statuses = msg.statuses
		m.buildChart()
		return m, nil
	}
	return m, nil
}

// buildChart plots completed counts over the last seven days.
func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	m.chart = barchart.New(chartWidth, 10)

	today := dateutil.Today()
	var bars []barchart.BarData
	for i := 6; i >= 0; i-- {
		day := dateutil.Offset(today, i)
		count := len(m.store.CompletionsForDate(day))

		t, err := dateutil.Parse(day)
		label := day
		if err == nil {
			label = t.Format("Mon")
		}

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: day, Value: float64(count), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	header := titleStyle.Render("Stats")

	if len(m.habits) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "",
				mutedStyle.Render("No habits yet.")))
	}

	table := m.renderStreakTable()
	chartTitle := mutedStyle.Render("Completions, last 7 days")
	badges := m.renderAchievements()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", table, "", chartTitle, m.chart.View(), "", badges))
}

func (m statsModel) renderStreakTable() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %8s %8s %8s\n", "HABIT", "STREAK", "BEST", "TOTAL")
	for _, h := range m.habits {
		name := h.Name
		if h.Archived() {
			name += " (archived)"
		}
		fmt.Fprintf(&b, "%-24s %8d %8d %8d\n", name, h.CurrentStreak, h.BestStreak, h.TotalCompletions)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m statsModel) renderAchievements() string {
	var unlocked []string
	for _, s := range m.statuses {
		if s.Unlocked {
			unlocked = append(unlocked, s.Icon+" "+s.Name)
		}
	}

	summary := fmt.Sprintf("Achievements: %d/%d unlocked, %d points",
		achievements.CountUnlocked(m.statuses), len(m.statuses), achievements.TotalPoints(m.statuses))
	if len(unlocked) == 0 {
		return mutedStyle.Render(summary)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(summary), strings.Join(unlocked, "  "))
}
