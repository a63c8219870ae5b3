// Package transcript defines the timed-text model shared by the speech model
// integration and the subtitle writer, plus the Transcriber capability the
// pipeline depends on.
package transcript

import (
	"context"
	"fmt"
	"strings"
)

// Task selects what the speech model does with the audio.
type Task string

const (
	// TaskTranscribe performs X->X speech recognition.
	TaskTranscribe Task = "transcribe"
	// TaskTranslate performs X->English translation.
	TaskTranslate Task = "translate"
)

// ParseTask validates a task name.
func ParseTask(value string) (Task, error) {
	switch Task(strings.ToLower(strings.TrimSpace(value))) {
	case TaskTranscribe, "":
		return TaskTranscribe, nil
	case TaskTranslate:
		return TaskTranslate, nil
	default:
		return "", fmt.Errorf("invalid task %q (choose from transcribe, translate)", value)
	}
}

// Word is a word-level sub-span of a segment.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one timed span of transcribed text. Offsets are in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Options are the recognized transcription options.
type Options struct {
	Task Task
	// Language is an ISO 639-1 code; empty means detect.
	Language string
	Verbose  bool
	// Tuning carries model-specific flags passed through verbatim.
	Tuning map[string]string
}

// Transcriber turns one audio file into ordered segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) ([]Segment, error)
}

// TranscriberFunc adapts a function to the Transcriber interface.
type TranscriberFunc func(ctx context.Context, audioPath string, opts Options) ([]Segment, error)

// Transcribe calls f.
func (f TranscriberFunc) Transcribe(ctx context.Context, audioPath string, opts Options) ([]Segment, error) {
	return f(ctx, audioPath, opts)
}
