package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/store"
	"github.com/ritualhq/ritual/internal/validation"
)

// habitsModel manages the full habit list: creating, editing, archiving,
// and deleting.
type habitsModel struct {
	store  *store.Store
	width  int
	height int

	habits       []models.Habit
	cursor       int
	showArchived bool

	// Form state. The field pointers are allocated once in the
	// constructor so they survive value copies of the model.
	formActive bool
	form       *huh.Form
	formType   string // "new" or "edit"
	editingID  string

	formName      *string
	formDesc      *string
	formIcon      *string
	formColor     *string
	formFrequency *string
	formDays      *[]int

	confirmDelete string // habit ID pending delete confirmation
}

func newHabitsModel(s *store.Store) habitsModel {
	return habitsModel{
		store:         s,
		formName:      new(string),
		formDesc:      new(string),
		formIcon:      new(string),
		formColor:     new(string),
		formFrequency: new(string),
		formDays:      new([]int),
	}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type habitsDataMsg struct {
	habits []models.Habit
}

func (m habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		if m.showArchived {
			return habitsDataMsg{habits: m.store.Habits()}
		}
		return habitsDataMsg{habits: m.store.ActiveHabits()}
	}
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.habits = msg.habits
		if m.cursor >= len(m.habits) {
			m.cursor = max(0, len(m.habits)-1)
		}
		return m, nil

	case tea.KeyMsg:
		// A pending delete only goes through on a second 'd'.
		if m.confirmDelete != "" {
			id := m.confirmDelete
			m.confirmDelete = ""
			if key.Matches(msg, keys.Delete) {
				m.store.DeleteHabit(id)
				return m, tea.Batch(m.refresh(), setStatus("Habit deleted"))
			}
			return m, setStatus("Delete cancelled")
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewForm()
		case key.Matches(msg, keys.Edit):
			if len(m.habits) > 0 {
				return m.showEditForm()
			}
		case key.Matches(msg, keys.Archive):
			if len(m.habits) > 0 {
				h := m.habits[m.cursor]
				if h.Archived() {
					m.store.UnarchiveHabit(h.ID)
					return m, tea.Batch(m.refresh(), setStatus("Habit unarchived"))
				}
				m.store.ArchiveHabit(h.ID)
				return m, tea.Batch(m.refresh(), setStatus("Habit archived"))
			}
		case key.Matches(msg, keys.Delete):
			if len(m.habits) > 0 {
				m.confirmDelete = m.habits[m.cursor].ID
				return m, setStatus("Press d again to delete, any other key to cancel")
			}
		case key.Matches(msg, keys.ShowAll):
			m.showArchived = !m.showArchived
			return m, m.refresh()
		}
	}
	return m, nil
}

func weekdayOptions() []huh.Option[int] {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	opts := make([]huh.Option[int], len(names))
	for i, n := range names {
		opts[i] = huh.NewOption(n, i)
	}
	return opts
}

func (m habitsModel) buildForm() *huh.Form {
	colorOptions := make([]huh.Option[string], len(habitColors))
	for i, c := range habitColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewInput().Title("Icon").Value(m.formIcon),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
			huh.NewSelect[string]().Title("Frequency").
				Options(
					huh.NewOption("Daily", string(models.FrequencyDaily)),
					huh.NewOption("Weekly", string(models.FrequencyWeekly)),
				).
				Value(m.formFrequency),
			huh.NewMultiSelect[int]().Title("Days (weekly only)").
				Options(weekdayOptions()...).
				Value(m.formDays),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (m habitsModel) showNewForm() (habitsModel, tea.Cmd) {
	*m.formName = ""
	*m.formDesc = ""
	*m.formIcon = "✦"
	*m.formColor = habitColors[0]
	*m.formFrequency = string(models.FrequencyDaily)
	*m.formDays = nil
	m.formType = "new"

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) showEditForm() (habitsModel, tea.Cmd) {
	h := m.habits[m.cursor]
	*m.formName = h.Name
	*m.formDesc = h.Description
	*m.formIcon = h.Icon
	*m.formColor = h.Color
	*m.formFrequency = string(h.Frequency)
	*m.formDays = append([]int(nil), h.TargetDays...)
	m.formType = "edit"
	m.editingID = h.ID

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}
	return m, cmd
}

func (m habitsModel) submitForm() (habitsModel, tea.Cmd) {
	input := models.CreateHabitInput{
		Name:        validation.SanitizeText(*m.formName),
		Description: validation.SanitizeText(*m.formDesc),
		Icon:        *m.formIcon,
		Color:       *m.formColor,
		Frequency:   models.Frequency(*m.formFrequency),
		TargetDays:  append([]int(nil), *m.formDays...),
	}

	if res := validation.ValidateHabitForm(input); !res.Valid {
		m.form = nil
		return m, setStatus(res.Errors[0])
	}

	if m.formType == "edit" {
		freq := input.Frequency
		days := input.TargetDays
		m.store.UpdateHabit(m.editingID, models.UpdateHabitInput{
			Name:        &input.Name,
			Description: &input.Description,
			Icon:        &input.Icon,
			Color:       &input.Color,
			Frequency:   &freq,
			TargetDays:  &days,
		})
		m.form = nil
		return m, tea.Batch(m.refresh(), setStatus("Habit updated"))
	}

	m.store.AddHabit(input)
	m.form = nil
	return m, tea.Batch(m.refresh(), setStatus("Habit created"))
}

func (m habitsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(m.form.View())
	}

	listTitle := "Habits"
	if m.showArchived {
		listTitle = "Habits (including archived)"
	}
	header := titleStyle.Render(listTitle)

	if len(m.habits) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "",
				mutedStyle.Render("No habits yet. Press n to create one.")))
	}

	var rows []string
	for i, h := range m.habits {
		line := fmt.Sprintf("%s %s", h.Icon, h.Name)
		if h.Frequency == models.FrequencyWeekly {
			line += mutedStyle.Render(fmt.Sprintf("  (%d days/week)", len(h.TargetDays)))
		}
		line += streakStyle.Render(fmt.Sprintf("  🔥%d", h.CurrentStreak)) +
			mutedStyle.Render(fmt.Sprintf("  best %d", h.BestStreak))

		style := lipgloss.NewStyle()
		if h.Archived() {
			style = archivedStyle
		}
		if i == m.cursor {
			line = selectedStyle.Render("▸ ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		rows = append(rows, line)
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(rows, "\n")))
}
