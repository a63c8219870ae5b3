package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options describes logger construction parameters.
type Options struct {
	// Level is the console threshold (debug, info, warn, error).
	Level string
	// Format selects the console rendering: "console" or "json".
	Format string
	// Console receives console output. Defaults to stderr.
	Console io.Writer
	// Color enables ANSI level colouring on the console handler.
	Color bool
	// FilePath, when set, additionally writes every record at FileLevel to
	// this file (opened for append) in FileFormat, which defaults to Format.
	FilePath   string
	FileLevel  string
	FileFormat string
	// Gate, when set, filters warnings from all outputs.
	Gate *Gate
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New constructs a slog logger using the provided options. The returned
// closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	format, err := parseFormat(opts.Format, "console")
	if err != nil {
		return nil, nil, err
	}
	fileFormat, err := parseFormat(opts.FileFormat, format)
	if err != nil {
		return nil, nil, err
	}

	consoleLevel := new(slog.LevelVar)
	consoleLevel.Set(ParseLevel(opts.Level))
	addSource := consoleLevel.Level() <= slog.LevelDebug

	var handlers []slog.Handler
	if format == "json" {
		handlers = append(handlers, newJSONHandler(console, consoleLevel, addSource))
	} else {
		handlers = append(handlers, newPrettyHandler(console, consoleLevel, addSource, opts.Color))
	}

	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		closer = file

		fileLevel := new(slog.LevelVar)
		fileLevel.Set(ParseLevel(defaultString(opts.FileLevel, "debug")))
		if fileFormat == "json" {
			handlers = append(handlers, newJSONHandler(file, fileLevel, true))
		} else {
			handlers = append(handlers, newPrettyHandler(file, fileLevel, true, false))
		}
	}

	handler := GateHandler(newFanoutHandler(handlers...), opts.Gate)
	return slog.New(handler), closer, nil
}

func parseFormat(value, fallback string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(value))
	switch format {
	case "":
		return fallback, nil
	case "console", "json":
		return format, nil
	default:
		return "", fmt.Errorf("log format: unsupported value %q", value)
	}
}

// ParseLevel maps a level name to its slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
