// Package backup keeps timestamped copies of the file-backed snapshot.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// MaxBackups is how many backups rotation keeps.
	MaxBackups = 14
	// BackupDirName is the directory backups live in, next to the snapshot.
	BackupDirName = "backups"

	backupPrefix = "ritual-"
	backupSuffix = ".json"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager copies a single snapshot file in and out of a backup directory.
type Manager struct {
	snapshotPath string
	backupDir    string
}

// NewManager creates a manager for the snapshot at the given path. Backups
// are stored in a sibling "backups" directory.
func NewManager(snapshotPath string) *Manager {
	return &Manager{
		snapshotPath: snapshotPath,
		backupDir:    filepath.Join(filepath.Dir(snapshotPath), BackupDirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create copies the current snapshot into the backup directory and rotates
// old backups. Returns the path of the new backup.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := os.ReadFile(m.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no snapshot to back up at %s", m.snapshotPath)
		}
		return "", fmt.Errorf("failed to read snapshot: %w", err)
	}

	path, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := m.rotate(); err != nil {
		// Rotation failure should not undo a successful backup.
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return path, nil
}

// List returns available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) <= len(backupPrefix)+len(backupSuffix) ||
			name[:len(backupPrefix)] != backupPrefix ||
			name[len(name)-len(backupSuffix):] != backupSuffix {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: fi.ModTime(),
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore replaces the snapshot with the given backup, after backing up
// the current snapshot so a mistaken restore can itself be undone.
func (m *Manager) Restore(backupPath string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if _, err := os.Stat(m.snapshotPath); err == nil {
		if _, err := m.Create(); err != nil {
			return fmt.Errorf("failed to preserve current snapshot: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(m.snapshotPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.snapshotPath, data, 0600); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	return nil
}

func (m *Manager) uniqueBackupPath() (string, error) {
	timestamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, backupPrefix+timestamp+backupSuffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp = time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, backupPrefix+timestamp+backupSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", backupPrefix, timestamp, counter, backupSuffix))
	}
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return err
		}
	}
	return nil
}
