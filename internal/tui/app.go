package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ritualhq/ritual/internal/store"
)

// App is the root Bubble Tea model. It owns the tab bar and status line
// and delegates everything else to the per-view sub-models.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView viewState
	showHelp   bool

	today  todayModel
	habits habitsModel
	stats  statsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewToday,
		today:      newTodayModel(s),
		habits:     newHabitsModel(s),
		stats:      newStatsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.today.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4
		a.today.setSize(a.width, contentHeight)
		a.habits.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, a.stats.refresh()

	case tea.KeyMsg:
		// A live form captures all keystrokes until submitted or cancelled.
		if a.activeView == viewHabits && a.habits.formActive {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, a.today.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHabits
			return a, a.habits.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.refresh()
	case viewHabits:
		return a.habits.refresh()
	case viewStats:
		return a.stats.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewHabits:
		content = a.habits.view()
	case viewStats:
		content = a.stats.view()
	}

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	tabs := []struct {
		label string
		view  viewState
	}{
		{"1 Today", viewToday},
		{"2 Habits", viewHabits},
		{"3 Stats", viewStats},
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t.view == a.activeView {
			rendered[i] = activeTabStyle.Render(t.label)
		} else {
			rendered[i] = inactiveTabStyle.Render(t.label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)
	if a.status == "" {
		return helpView
	}
	return lipgloss.JoinVertical(lipgloss.Left, statusStyle.Render(a.status), helpView)
}
