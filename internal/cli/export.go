package cli

import (
	"fmt"

	"github.com/ritualhq/ritual/internal/export"
)

type ExportCmd struct {
	Format string `help:"Export format." enum:"csv,json" default:"csv"`
	Output string `help:"Output file path." default:""`
}

func (c *ExportCmd) Run(ctx *Context) error {
	path := c.Output
	if path == "" {
		path = "ritual-export." + c.Format
	}

	habits := ctx.Store.Habits()
	completions := ctx.Store.Completions()

	var err error
	switch c.Format {
	case "json":
		err = export.ToJSON(habits, completions, path)
	default:
		err = export.ToCSV(habits, completions, path)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d habits and %d completions to %s\n", len(habits), len(completions), path)
	return nil
}
