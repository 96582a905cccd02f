package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ritualhq/ritual/internal/store"
)

type viewState int

const (
	viewToday viewState = iota
	viewHabits
	viewStats
)

type statusMsg struct {
	text string
}

func setStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// Run starts the interactive terminal UI on the given store and blocks
// until the user quits.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewApp(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
