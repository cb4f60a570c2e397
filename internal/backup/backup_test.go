package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
	return path
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{"version":1,"users":{}}`)

	m := NewManager(storePath)
	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(backupPath), BackupFilePrefix) {
		t.Errorf("backup name %q missing prefix %q", filepath.Base(backupPath), BackupFilePrefix)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("backup %q should keep the store extension", backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"version":1,"users":{}}` {
		t.Errorf("backup content mismatch: %q", data)
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.Create(); err == nil {
		t.Error("expected error for missing store file")
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{}`)

	m := NewManager(storePath)

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	backups, err = m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be nonzero")
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{}`)

	m := NewManager(storePath)
	if _, err := m.Create(); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	writeStore(t, m.BackupDir(), "notes.txt", "unrelated")
	writeStore(t, m.BackupDir(), BackupFilePrefix+"garbage.json", "bad stamp")

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{"version":1}`)

	m := NewManager(storePath)
	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Mutate the live store, then restore the snapshot.
	writeStore(t, dir, "timegrid.json", `{"version":1,"changed":true}`)

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("restored content mismatch: %q", data)
	}

	// The pre-restore state was itself backed up.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected pre-restore backup to exist, got %d backups", len(backups))
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{}`)

	m := NewManager(storePath)
	if err := m.Restore(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing backup file")
	}
}

func TestRestoreRejectsEmptyBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{}`)
	empty := writeStore(t, dir, "empty.json", "")

	m := NewManager(storePath)
	if err := m.Restore(empty); err == nil {
		t.Error("expected error for empty backup file")
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "timegrid.json", `{}`)

	m := NewManager(storePath)

	// Seed more than MaxBackups files with distinct parseable stamps.
	if err := os.MkdirAll(m.BackupDir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < MaxBackups+3; i++ {
		name := fmt.Sprintf("%s20250101-10%02d00.json", BackupFilePrefix, i)
		writeStore(t, m.BackupDir(), name, "snapshot")
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("rotation kept %d backups, limit is %d", len(backups), MaxBackups)
	}
}
