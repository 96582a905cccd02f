package cli

import (
	"fmt"
	"sort"

	"github.com/ritualhq/ritual/internal/achievements"
	"github.com/ritualhq/ritual/internal/dateutil"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	habits := ctx.Store.ActiveHabits()
	if len(habits) == 0 {
		fmt.Println("No active habits.")
		return nil
	}

	today := dateutil.Today()
	for _, h := range habits {
		mark := "░"
		if ctx.Store.IsCompletedOn(h.ID, today) {
			mark = "█"
		} else if !h.ScheduledOn(dateutil.Weekday(today)) {
			mark = "·"
		}
		fmt.Printf("%s %s %s (streak %d)\n", mark, h.Icon, h.Name, h.CurrentStreak)
	}

	p := ctx.Store.TodayProgress()
	fmt.Printf("\n%d/%d done (%d%%)\n", p.Completed, p.Total, p.Percentage)
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CurrentStreak > habits[j].CurrentStreak
	})

	fmt.Printf("%-24s %8s %8s %8s\n", "HABIT", "STREAK", "BEST", "TOTAL")
	for _, h := range habits {
		name := h.Name
		if h.Archived() {
			name += " (archived)"
		}
		fmt.Printf("%-24s %8d %8d %8d\n", name, h.CurrentStreak, h.BestStreak, h.TotalCompletions)
	}

	statuses := achievements.Evaluate(ctx.Store.Habits(), ctx.Store.Completions())
	fmt.Printf("\nAchievements: %d/%d unlocked, %d points\n",
		achievements.CountUnlocked(statuses), len(statuses), achievements.TotalPoints(statuses))
	return nil
}

type AchievementsCmd struct {
	All bool `help:"Show locked achievements too."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
	statuses := achievements.Evaluate(ctx.Store.Habits(), ctx.Store.Completions())

	for _, s := range statuses {
		if s.Unlocked {
			fmt.Printf("%s %s — %s (+%d)\n", s.Icon, s.Name, s.Description, s.Points)
		} else if c.All {
			fmt.Printf("🔒 %s — %s (%d%%)\n", s.Name, s.Description, s.Progress)
		}
	}

	fmt.Printf("\n%d/%d unlocked, %d points\n",
		achievements.CountUnlocked(statuses), len(statuses), achievements.TotalPoints(statuses))
	return nil
}
