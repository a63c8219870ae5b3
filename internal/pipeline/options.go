package pipeline

import (
	"strings"

	"autosub/internal/language"
	"autosub/internal/services/whisperx"
	"autosub/internal/transcript"
)

// Options are the per-run settings resolved from flags and config.
type Options struct {
	Model     string
	OutputDir string
	// OutputSRT persists the subtitle file to OutputDir.
	OutputSRT bool
	// SRTOnly skips burn-in; it implies OutputSRT.
	SRTOnly   bool
	Verbose   bool
	Task      transcript.Task
	Language  string
	KeepGoing bool
	Tuning    map[string]string
}

// PersistSubtitles reports whether SRT files go to the output directory.
func (o Options) PersistSubtitles() bool {
	return o.OutputSRT || o.SRTOnly
}

// EffectiveLanguage returns the language code handed to the model. English-only
// models always get "en" and forced reports that the override was applied.
// "auto" maps to "" (detect).
func EffectiveLanguage(model, lang string) (code string, forced bool) {
	if whisperx.IsEnglishOnly(model) {
		return "en", true
	}
	lang = strings.TrimSpace(lang)
	if language.IsAuto(lang) {
		return "", false
	}
	return lang, false
}

// TranscriptOptions builds the options passed to the transcriber.
func (o Options) TranscriptOptions() transcript.Options {
	lang, _ := EffectiveLanguage(o.Model, o.Language)
	task := o.Task
	if task == "" {
		task = transcript.TaskTranscribe
	}
	return transcript.Options{
		Task:     task,
		Language: lang,
		Verbose:  o.Verbose,
		Tuning:   o.Tuning,
	}
}
