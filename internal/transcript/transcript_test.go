package transcript

import (
	"context"
	"testing"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		input   string
		want    Task
		wantErr bool
	}{
		{"transcribe", TaskTranscribe, false},
		{"", TaskTranscribe, false},
		{" Translate ", TaskTranslate, false},
		{"summarize", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTask(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTask(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseTask(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTranscriberFunc(t *testing.T) {
	var gotPath string
	var gotOpts Options
	fn := TranscriberFunc(func(_ context.Context, audioPath string, opts Options) ([]Segment, error) {
		gotPath = audioPath
		gotOpts = opts
		return []Segment{{Start: 0, End: 1, Text: "hi"}}, nil
	})

	segs, err := fn.Transcribe(context.Background(), "/tmp/a.wav", Options{Task: TaskTranslate, Language: "de"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "hi" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
	if gotPath != "/tmp/a.wav" || gotOpts.Task != TaskTranslate || gotOpts.Language != "de" {
		t.Fatalf("unexpected call: %q %+v", gotPath, gotOpts)
	}
}
