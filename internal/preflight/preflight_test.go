package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"autosub/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_Missing(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
}

func TestCheckDirectoryAccess_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckDirectoryAccess("test", path).Passed {
		t.Fatal("expected failure for regular file")
	}
}

func TestCheckCreatableDirectory(t *testing.T) {
	base := t.TempDir()
	if r := CheckCreatableDirectory("out", filepath.Join(base, "a", "b")); !r.Passed {
		t.Fatalf("expected nested missing dir to be creatable: %s", r.Detail)
	}
	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckCreatableDirectory("out", filepath.Join(file, "sub")); r.Passed {
		t.Fatal("expected failure when ancestor is a file")
	}
}

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAll(t *testing.T) {
	bin := t.TempDir()
	cfg := config.Default()
	cfg.Tools.FFmpeg = writeStub(t, bin, "ffmpeg")
	cfg.Tools.UVX = writeStub(t, bin, "uvx")
	cfg.Tools.FFprobe = filepath.Join(bin, "ffprobe-missing")
	cfg.Paths.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Paths.TempDir = t.TempDir()

	results := RunAll(&cfg, Scope{})
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "FFprobe" {
		t.Fatalf("expected only ffprobe to fail, got %+v", failed)
	}

	if failed := Failed(RunAll(&cfg, Scope{SRTOnly: true})); len(failed) != 0 {
		t.Fatalf("ffprobe must not be required for srt-only runs, got %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if RunAll(nil, Scope{}) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
