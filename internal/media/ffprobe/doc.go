// Package ffprobe inspects media containers with ffprobe's JSON output.
//
// Inspect returns the stream list and container format; the runner is
// injectable so callers can test without the binary installed.
package ffprobe
