package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autosub/internal/config"
	"autosub/internal/transcript"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

type fakeTranscriber struct {
	failOn string
	calls  []string
	opts   []transcript.Options
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string, opts transcript.Options) ([]transcript.Segment, error) {
	f.calls = append(f.calls, filepath.Base(audioPath))
	f.opts = append(f.opts, opts)
	if f.failOn != "" && strings.Contains(audioPath, f.failOn) {
		return nil, errors.New("model exploded")
	}
	return []transcript.Segment{
		{Start: 0, End: 1.5, Text: " Hello there. "},
		{Start: 1.5, End: 3.25, Text: "General Kenobi."},
	}, nil
}

type cliTestEnv struct {
	baseDir     string
	outDir      string
	tmpDir      string
	logDir      string
	binDir      string
	configPath  string
	transcriber *fakeTranscriber
	seenConfig  *config.Config
	ffmpegCalls [][]string
	env         environment
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	e := &cliTestEnv{
		baseDir:     base,
		outDir:      filepath.Join(base, "out"),
		tmpDir:      filepath.Join(base, "tmp"),
		logDir:      filepath.Join(base, "logs"),
		binDir:      filepath.Join(base, "bin"),
		configPath:  filepath.Join(base, "autosub-test.toml"),
		transcriber: &fakeTranscriber{},
	}
	for _, dir := range []string{e.tmpDir, e.binDir, filepath.Join(base, "home")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("PATH", e.binDir)
	t.Chdir(base)

	for _, name := range []string{"ffmpeg", "ffprobe", "uvx"} {
		writeStubBinary(t, e.binDir, name)
	}
	writeTestConfig(t, e.configPath, fmt.Sprintf(
		"[paths]\ntemp_dir = %q\nlog_dir = %q\n\n[logging]\nformat = \"json\"\n",
		e.tmpDir, e.logDir,
	))

	e.env = environment{
		newTranscriber: func(cfg *config.Config, _ *slog.Logger) transcript.Transcriber {
			e.seenConfig = cfg
			return e.transcriber
		},
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			e.ffmpegCalls = append(e.ffmpegCalls, args)
			if strings.Contains(inputArg(args), "broken") {
				return []byte("Invalid data found when processing input"), errors.New("exit status 1")
			}
			return nil, os.WriteFile(args[len(args)-1], []byte("data"), 0o644)
		},
		runProbe: func(context.Context, string, ...string) ([]byte, error) {
			return []byte(`{"streams":[{"codec_type":"video"},{"codec_type":"audio"}]}`), nil
		},
		now: func() time.Time { return fixedNow },
	}
	return e
}

func (e *cliTestEnv) video(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.baseDir, name)
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	return path
}

func runCLI(t *testing.T, env environment, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(env)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, e.env, append([]string{"--config", e.configPath}, args...)...)
}

func inputArg(args []string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-i" {
			return args[i+1]
		}
	}
	return ""
}

func writeStubBinary(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func writeTestConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
