package subtitles_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"autosub/internal/batch"
	"autosub/internal/logging"
	"autosub/internal/services"
	"autosub/internal/subtitles"
	"autosub/internal/transcript"
)

type fakeTranscriber struct {
	gate     *logging.Gate
	segments []transcript.Segment
	err      error
	panics   bool

	calls          int
	lastOpts       transcript.Options
	suppressedSeen bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string, opts transcript.Options) ([]transcript.Segment, error) {
	f.calls++
	f.lastOpts = opts
	f.suppressedSeen = f.gate.Suppressed()
	if f.panics {
		panic("model crashed")
	}
	return f.segments, f.err
}

func newItem(t *testing.T) *batch.Item {
	t.Helper()
	b, err := batch.New([]string{"/videos/talk.mp4"})
	if err != nil {
		t.Fatal(err)
	}
	item := b.Items[0]
	item.AudioPath = "/tmp/talk.wav"
	return item
}

func TestGenerateWritesToTempByDefault(t *testing.T) {
	tmp, out := t.TempDir(), t.TempDir()
	gate := logging.NewGate()
	fake := &fakeTranscriber{gate: gate, segments: []transcript.Segment{{Start: 0, End: 1.5, Text: "Hi"}}}
	gen := subtitles.NewGenerator(fake, gate, tmp, logging.NewNop())
	item := newItem(t)

	opts := transcript.Options{Task: transcript.TaskTranslate, Language: "de"}
	if err := gen.Generate(context.Background(), item, subtitles.Request{OutputDir: out, Options: opts}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if item.SubtitlePath != filepath.Join(tmp, "talk.srt") {
		t.Fatalf("unexpected path %q", item.SubtitlePath)
	}
	data, err := os.ReadFile(item.SubtitlePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1\n00:00:00,000 --> 00:00:01,500\nHi\n\n" {
		t.Fatalf("unexpected srt %q", data)
	}
	if item.CueCount != 1 {
		t.Fatalf("cue count = %d", item.CueCount)
	}
	if fake.lastOpts.Task != transcript.TaskTranslate || fake.lastOpts.Language != "de" {
		t.Fatalf("options not forwarded: %+v", fake.lastOpts)
	}
	if !fake.suppressedSeen {
		t.Fatal("expected warnings suppressed during transcription")
	}
	if gate.Suppressed() {
		t.Fatal("expected gate restored after transcription")
	}
}

func TestGeneratePersistsToOutputDir(t *testing.T) {
	tmp, out := t.TempDir(), t.TempDir()
	fake := &fakeTranscriber{}
	gen := subtitles.NewGenerator(fake, nil, tmp, nil)
	item := newItem(t)
	if err := gen.Generate(context.Background(), item, subtitles.Request{Persist: true, OutputDir: out}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if item.SubtitlePath != filepath.Join(out, "talk.srt") {
		t.Fatalf("unexpected path %q", item.SubtitlePath)
	}
	data, err := os.ReadFile(item.SubtitlePath)
	if err != nil || len(data) != 0 {
		t.Fatalf("expected empty srt for no segments, got %q err=%v", data, err)
	}
}

func TestGenerateFailureRestoresGate(t *testing.T) {
	tmp := t.TempDir()
	gate := logging.NewGate()
	fake := &fakeTranscriber{gate: gate, err: errors.New("cuda oom")}
	gen := subtitles.NewGenerator(fake, gate, tmp, nil)
	item := newItem(t)

	err := gen.Generate(context.Background(), item, subtitles.Request{})
	if !errors.Is(err, services.ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}
	if gate.Suppressed() {
		t.Fatal("gate must be restored after a failed transcription")
	}
	if item.SubtitlePath != "" {
		t.Fatalf("no subtitle should be recorded, got %q", item.SubtitlePath)
	}
	if _, statErr := os.Stat(filepath.Join(tmp, "talk.srt")); !os.IsNotExist(statErr) {
		t.Fatal("no srt file should be written on failure")
	}
}

func TestGeneratePanicRestoresGate(t *testing.T) {
	gate := logging.NewGate()
	gen := subtitles.NewGenerator(&fakeTranscriber{gate: gate, panics: true}, gate, t.TempDir(), nil)
	func() {
		defer func() { _ = recover() }()
		_ = gen.Generate(context.Background(), newItem(t), subtitles.Request{})
	}()
	if gate.Suppressed() {
		t.Fatal("gate must be restored after a panic")
	}
}

func TestGenerateRequiresAudio(t *testing.T) {
	fake := &fakeTranscriber{}
	gen := subtitles.NewGenerator(fake, nil, t.TempDir(), nil)
	item := newItem(t)
	item.AudioPath = ""
	if err := gen.Generate(context.Background(), item, subtitles.Request{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatal("transcriber must not run without audio")
	}
}
