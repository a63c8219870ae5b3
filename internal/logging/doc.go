// Package logging assembles structured slog loggers and formatting helpers used
// across autosub.
//
// It owns the console/JSON handlers, the daily debug log file, the warning gate
// that silences model warnings during transcription, and context-aware helpers
// so stage code can tag log lines with the source video and stage.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
