package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ritualhq/ritual/internal/cli"
	"github.com/ritualhq/ritual/internal/constants"
	"github.com/ritualhq/ritual/internal/errors"
	"github.com/ritualhq/ritual/internal/keyring"
	"github.com/ritualhq/ritual/internal/logger"
	"github.com/ritualhq/ritual/internal/storage"
	"github.com/ritualhq/ritual/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config directory, SQLite file (.db), 'postgres' to use the stored connection string, or a postgres:// URL without embedded credentials." default:"~/.config/ritual"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize storage."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add          cli.AddCmd          `cmd:"" help:"Add a new habit."`
	List         cli.ListCmd         `cmd:"" help:"List habits."`
	Edit         cli.EditCmd         `cmd:"" help:"Edit a habit."`
	Done         cli.DoneCmd         `cmd:"" help:"Toggle a habit's completion for a day."`
	Log          cli.LogCmd          `cmd:"" help:"Show a habit's completion history."`
	Archive      cli.ArchiveCmd      `cmd:"" help:"Archive a habit."`
	Unarchive    cli.UnarchiveCmd    `cmd:"" help:"Unarchive a habit."`
	Delete       cli.DeleteCmd       `cmd:"" help:"Delete a habit and its completions."`
	Today        cli.TodayCmd        `cmd:"" help:"Show today's habits and progress."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show streak statistics."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show unlocked achievements."`
	Export       cli.ExportCmd       `cmd:"" help:"Export habits and completions."`
	Doctor       cli.DoctorCmd       `cmd:"" help:"Run health checks."`
	Backup       struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage snapshot backups."`
	Connection struct {
		Set   cli.ConnectionSetCmd   `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Clear cli.ConnectionClearCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first habit tracker with streaks and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.3.1"},
	)

	appCtx, err := buildContext(CLI.Config, CLI.Debug)
	if err != nil {
		errors.Fatal(err)
	}
	defer appCtx.KV.Close()

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: appCtx.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	appCtx.Store.Hydrate()
	errors.Fatal(ctx.Run(appCtx))
}

// buildContext selects the storage backend from the config string and
// wires up the domain store.
func buildContext(config string, debug bool) (*cli.Context, error) {
	appCtx := &cli.Context{Debug: debug}

	switch {
	case storage.IsPostgresConnString(config):
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; use %s, .pgpass, or 'ritual connection set'", constants.ConnectionEnvVar)
		}
		kv, err := storage.NewPostgresKV(config)
		if err != nil {
			return nil, err
		}
		appCtx.KV = kv
		appCtx.ConfigDir = storage.ExpandPath(constants.DefaultConfigPath)

	case config == "postgres":
		connStr, err := resolveConnString()
		if err != nil {
			return nil, err
		}
		kv, err := storage.NewPostgresKV(connStr)
		if err != nil {
			return nil, err
		}
		appCtx.KV = kv
		appCtx.ConfigDir = storage.ExpandPath(constants.DefaultConfigPath)

	case config == "memory":
		// Dry-run backend: nothing survives the process.
		appCtx.KV = storage.NewMemoryKV()
		appCtx.ConfigDir = storage.ExpandPath(constants.DefaultConfigPath)

	case strings.HasSuffix(config, ".db") || strings.HasSuffix(config, ".sqlite"):
		kv, err := storage.NewSQLiteKV(config)
		if err != nil {
			return nil, err
		}
		appCtx.KV = kv
		appCtx.ConfigDir = filepath.Dir(storage.ExpandPath(config))

	default:
		kv := storage.NewFileKV(config)
		appCtx.KV = kv
		appCtx.ConfigDir = kv.Dir()
		appCtx.SnapshotPath = filepath.Join(kv.Dir(), filepath.FromSlash(constants.StateKey)+".json")
	}

	appCtx.Store = store.New(appCtx.KV)
	return appCtx, nil
}

// resolveConnString looks up the postgres connection string from the
// environment first, then the OS keyring.
func resolveConnString() (string, error) {
	// Embedded credentials are fine in the environment or keyring; the
	// rejection above only targets strings typed on the command line.
	if connStr := os.Getenv(constants.ConnectionEnvVar); connStr != "" {
		return connStr, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return "", fmt.Errorf("no connection string: set %s or run 'ritual connection set' (%v)", constants.ConnectionEnvVar, err)
	}
	return connStr, nil
}
