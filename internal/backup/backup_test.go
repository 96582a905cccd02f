package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndList(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(writeSnapshot(t, dir, `{"habits":[]}`))

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"habits":[]}` {
		t.Errorf("backup content = %q", data)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size not recorded")
	}
}

func TestCreateWithoutSnapshot(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "state.json"))
	if _, err := m.Create(); err == nil {
		t.Fatal("expected error when snapshot is missing")
	}
}

func TestListEmpty(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "state.json"))
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("got %d backups from missing dir", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	snapshot := writeSnapshot(t, dir, `{"habits":["old"]}`)
	m := NewManager(snapshot)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Change the live snapshot, then restore the backup.
	if err := os.WriteFile(snapshot, []byte(`{"habits":["new"]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	data, _ := os.ReadFile(snapshot)
	if string(data) != `{"habits":["old"]}` {
		t.Errorf("restored content = %q", data)
	}

	// The pre-restore state was preserved as its own backup.
	backups, _ := m.List()
	if len(backups) < 2 {
		t.Errorf("got %d backups after restore, want current state preserved", len(backups))
	}
}

func TestUniqueNamesWithinSameMinute(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(writeSnapshot(t, dir, "{}"))

	p1, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	p2, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Errorf("two backups share the path %s", p1)
	}
}
