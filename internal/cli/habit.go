package cli

import (
	"fmt"
	"strings"

	"github.com/ritualhq/ritual/internal/dateutil"
	"github.com/ritualhq/ritual/internal/models"
	"github.com/ritualhq/ritual/internal/streak"
	"github.com/ritualhq/ritual/internal/validation"
)

type AddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description." default:""`
	Icon        string `help:"Display icon (emoji)." default:"✅"`
	Color       string `help:"Display color (hex)." default:"#4A90D9"`
	Frequency   string `help:"daily, weekly, or custom." enum:"daily,weekly,custom" default:"daily"`
	Days        string `help:"Target days for weekly habits (e.g. mon,wed,fri)." default:""`
	Count       int    `help:"Times per scheduled day." default:"1"`
}

func (c *AddCmd) Run(ctx *Context) error {
	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	input := models.CreateHabitInput{
		Name:        validation.SanitizeText(c.Name),
		Description: validation.SanitizeText(c.Description),
		Icon:        c.Icon,
		Color:       c.Color,
		Frequency:   models.Frequency(c.Frequency),
		TargetDays:  days,
		TargetCount: c.Count,
	}

	if res := validation.ValidateHabitForm(input); !res.Valid {
		return fmt.Errorf("%s", strings.TrimSpace(res.FormatReport()))
	}
	if _, exists := ctx.Store.HabitByName(input.Name); exists {
		return fmt.Errorf("habit with name %q already exists", input.Name)
	}

	habit := ctx.Store.AddHabit(input)
	fmt.Printf("Added habit: %s %s (%s)\n", habit.Icon, habit.Name, FormatSchedule(habit))
	return nil
}

type ListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *ListCmd) Run(ctx *Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'ritual add'.")
		return nil
	}

	shown := 0
	for _, h := range habits {
		if h.Archived() && !c.Archived {
			continue
		}
		shown++
		status := ""
		if h.Archived() {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s %s%s — %s, streak %d (best %d), %d total\n",
			h.Icon, h.Name, status, FormatSchedule(h), h.CurrentStreak, h.BestStreak, h.TotalCompletions)
	}
	if shown == 0 {
		fmt.Println("No active habits. Use --archived to include archived ones.")
	}
	return nil
}

type EditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Icon        *string `help:"New icon."`
	Color       *string `help:"New color."`
	Frequency   *string `help:"New frequency." enum:"daily,weekly,custom"`
	Days        *string `help:"New target days (e.g. mon,wed,fri)."`
	Count       *int    `help:"New target count."`
}

func (c *EditCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	var updates models.UpdateHabitInput
	if c.Name != nil {
		name := validation.SanitizeText(*c.Name)
		if res := validation.ValidateHabitName(name); !res.Valid {
			return fmt.Errorf("%s", strings.Join(res.Errors, "; "))
		}
		updates.Name = &name
	}
	if c.Description != nil {
		desc := validation.SanitizeText(*c.Description)
		if res := validation.ValidateHabitDescription(desc); !res.Valid {
			return fmt.Errorf("%s", strings.Join(res.Errors, "; "))
		}
		updates.Description = &desc
	}
	if c.Icon != nil {
		updates.Icon = c.Icon
	}
	if c.Color != nil {
		updates.Color = c.Color
	}
	if c.Frequency != nil {
		freq := models.Frequency(*c.Frequency)
		updates.Frequency = &freq
	}
	if c.Days != nil {
		days, err := ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		updates.TargetDays = &days
	}
	if c.Count != nil {
		updates.TargetCount = c.Count
	}

	// Weekly habits must keep at least one target day after the edit.
	merged := habit
	if updates.Frequency != nil {
		merged.Frequency = *updates.Frequency
	}
	if updates.TargetDays != nil {
		merged.TargetDays = *updates.TargetDays
	}
	if merged.Frequency == models.FrequencyWeekly && len(merged.TargetDays) == 0 {
		return fmt.Errorf("weekly habits need at least one target day")
	}

	if !ctx.Store.UpdateHabit(habit.ID, updates) {
		return fmt.Errorf("habit %q not found", c.Habit)
	}
	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = dateutil.Today()
	} else if !dateutil.Valid(day) {
		return fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", day)
	}

	ctx.Store.ToggleCompletion(habit.ID, day)

	updated, _ := ctx.Store.Habit(habit.ID)
	if ctx.Store.IsCompletedOn(habit.ID, day) {
		fmt.Printf("Marked %q done for %s. Streak: %d\n", habit.Name, day, updated.CurrentStreak)
	} else {
		fmt.Printf("Unmarked %q for %s. Streak: %d\n", habit.Name, day, updated.CurrentStreak)
	}
	return nil
}

type LogCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Days  int    `help:"How many days of history to show." default:"30"`
}

func (c *LogCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	completions := ctx.Store.CompletionsForHabit(habit.ID)
	done := make(map[string]bool, len(completions))
	for _, comp := range completions {
		done[comp.Date] = true
	}

	fmt.Printf("%s %s — %s\n", habit.Icon, habit.Name, FormatSchedule(habit))
	var row strings.Builder
	today := dateutil.Today()
	for i := c.Days - 1; i >= 0; i-- {
		day := dateutil.Offset(today, i)
		switch {
		case done[day]:
			row.WriteString("█")
		case !habit.ScheduledOn(dateutil.Weekday(day)):
			row.WriteString("·")
		default:
			row.WriteString("░")
		}
	}
	fmt.Println(row.String())
	fmt.Printf("Streak: %d (best %d), %d completions\n",
		habit.CurrentStreak, habit.BestStreak, habit.TotalCompletions)
	if streak.IsActive(habit, completions) {
		fmt.Println("Streak is active.")
	}
	return nil
}

type ArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *ArchiveCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	ctx.Store.ArchiveHabit(habit.ID)
	fmt.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type UnarchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *UnarchiveCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	ctx.Store.UnarchiveHabit(habit.ID)
	fmt.Printf("Unarchived habit: %s\n", habit.Name)
	return nil
}

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete %q and its %d completions? [y/N] ", habit.Name, habit.TotalCompletions)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.Store.DeleteHabit(habit.ID)
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
