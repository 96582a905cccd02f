package cli

import (
	"fmt"
	"strconv"

	"github.com/ritualhq/ritual/internal/backup"
)

func backupManager(ctx *Context) (*backup.Manager, error) {
	if ctx.SnapshotPath == "" {
		return nil, fmt.Errorf("backups are only supported with the file storage backend")
	}
	return backup.NewManager(ctx.SnapshotPath), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for i, b := range backups {
		fmt.Printf("%2d. %s  %s  %d bytes\n", i+1, b.Timestamp.Format("2006-01-02 15:04"), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup number from 'backup list', or a path."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path := c.Backup
	if n, err := strconv.Atoi(c.Backup); err == nil {
		backups, err := mgr.List()
		if err != nil {
			return err
		}
		if n < 1 || n > len(backups) {
			return fmt.Errorf("no backup number %d (have %d)", n, len(backups))
		}
		path = backups[n-1].Path
	}

	if err := mgr.Restore(path); err != nil {
		return err
	}

	// Reload the restored snapshot so the running process sees it.
	ctx.Store.Hydrate()
	fmt.Printf("Restored backup: %s\n", path)
	return nil
}
