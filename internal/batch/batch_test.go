package batch_test

import (
	"errors"
	"testing"

	"autosub/internal/batch"
	"autosub/internal/services"
)

func TestNewKeepsOrderAndStems(t *testing.T) {
	b, err := batch.New([]string{"/videos/b.mkv", "a.mp4", "/x/y/c.d.mov"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []string{"b", "a", "c.d"}
	for i, item := range b.Items {
		if item.Stem != want[i] {
			t.Fatalf("item %d stem = %q, want %q", i, item.Stem, want[i])
		}
	}
}

func TestNewRejects(t *testing.T) {
	cases := map[string][]string{
		"empty":        nil,
		"blank":        {"a.mp4", " "},
		"duplicate":    {"a.mp4", "./a.mp4"},
		"stem clashes": {"/one/talk.mp4", "/two/talk.mkv"},
	}
	for name, paths := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := batch.New(paths)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFailAndViews(t *testing.T) {
	b, err := batch.New([]string{"a.mp4", "b.mp4", "c.mp4"})
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range b.Items {
		item.AudioPath = "/tmp/" + item.Stem + ".wav"
	}
	b.Items[1].Fail(batch.StageExtract, errors.New("no audio"))
	b.Items[1].Fail(batch.StageMux, errors.New("ignored"))

	if b.Items[1].FailedStage != batch.StageExtract || b.Items[1].Err.Error() != "no audio" {
		t.Fatalf("first failure must win: %+v", b.Items[1])
	}
	pending := b.Pending()
	if len(pending) != 2 || pending[0].Source != "a.mp4" || pending[1].Source != "c.mp4" {
		t.Fatalf("unexpected pending %+v", pending)
	}
	if failures := b.Failures(); len(failures) != 1 || failures[0].Source != "b.mp4" {
		t.Fatalf("unexpected failures %+v", failures)
	}
	audio := b.AudioMap()
	if len(audio) != 2 || audio["c.mp4"] != "/tmp/c.wav" {
		t.Fatalf("unexpected audio map %v", audio)
	}
	if len(b.SubtitleMap()) != 0 || len(b.OutputMap()) != 0 {
		t.Fatal("expected empty subtitle and output maps")
	}
}
