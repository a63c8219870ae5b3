package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"autosub/internal/logging"
)

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 31, 10, 0, 0, 0, time.Local)
	for _, name := range []string{"2024-04-01.log", "2024-05-30.log", "2024-05-31.log", "notes.txt", "2020-01-01.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	keep := filepath.Join(dir, "2024-04-01.log")
	if removed := logging.CleanupOldLogs(logging.NewNop(), dir, 30, now, keep); removed != 0 {
		t.Fatalf("expected kept file to survive, removed %d", removed)
	}
	if removed := logging.CleanupOldLogs(logging.NewNop(), dir, 30, now, ""); removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	for _, name := range []string{"2024-05-30.log", "2024-05-31.log", "notes.txt", "2020-01-01.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to remain: %v", name, err)
		}
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "2000-01-01.log")
	if err := os.WriteFile(old, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if removed := logging.CleanupOldLogs(nil, dir, 0, time.Now(), ""); removed != 0 {
		t.Fatalf("retention 0 must not prune, removed %d", removed)
	}
}
