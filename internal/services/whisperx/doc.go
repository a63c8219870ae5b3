// Package whisperx runs WhisperX through uvx as the speech model behind the
// transcript.Transcriber capability.
//
// The service invokes WhisperX once per audio file with JSON output in a
// scratch directory, loads the timed segments (including word-level spans
// when present), and removes the scratch output. Model-specific settings
// (device, VAD method, batch and beam sizes, free-form tuning flags) come from
// Config; per-call options (task, language, verbosity) come from
// transcript.Options.
package whisperx
