package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	e := setupCLITestEnv(t)
	target := filepath.Join(e.baseDir, "conf", "autosub.toml")

	stdout, _, err := runCLI(t, e.env, "config", "init", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[transcription]")

	if _, _, err := runCLI(t, e.env, "config", "init", target); err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
	if err := os.WriteFile(target, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := runCLI(t, e.env, "config", "init", "--overwrite", target); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	data, err = os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(data) == "stale" {
		t.Fatal("sample config was not overwritten")
	}
}

func TestConfigInitDefaultPath(t *testing.T) {
	e := setupCLITestEnv(t)

	if _, _, err := runCLI(t, e.env, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	want := filepath.Join(e.baseDir, "home", ".config", "autosub", "config.toml")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected sample at %s: %v", want, err)
	}
}

func TestCheckReportsTools(t *testing.T) {
	e := setupCLITestEnv(t)

	stdout, _, err := e.run(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"FFmpeg", "FFprobe", "uvx", "Temp directory", "ok"} {
		requireContains(t, stdout, want)
	}
	requireContains(t, stdout, e.configPath)
}

func TestCheckFailsWhenToolMissing(t *testing.T) {
	e := setupCLITestEnv(t)
	if err := os.Remove(filepath.Join(e.binDir, "ffmpeg")); err != nil {
		t.Fatalf("remove stub: %v", err)
	}

	stdout, _, err := e.run(t, "check")
	if err == nil {
		t.Fatal("expected check to fail")
	}
	requireContains(t, stdout, "failed")
}

func TestCheckSRTOnlyTreatsFFprobeAsOptional(t *testing.T) {
	e := setupCLITestEnv(t)
	if err := os.Remove(filepath.Join(e.binDir, "ffprobe")); err != nil {
		t.Fatalf("remove stub: %v", err)
	}

	stdout, _, err := e.run(t, "check", "--srt_only")
	if err != nil {
		t.Fatalf("check --srt_only: %v", err)
	}
	requireContains(t, stdout, "unavailable (optional)")
}

func TestLanguagesListsCodes(t *testing.T) {
	stdout, _, err := runCLI(t, defaultEnvironment(), "languages")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	for _, want := range []string{"auto", "German", "ja"} {
		requireContains(t, stdout, want)
	}
}
