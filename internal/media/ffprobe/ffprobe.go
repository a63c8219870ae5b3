package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Runner executes ffprobe and returns its standard output.
type Runner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// Result is the subset of ffprobe's report needed before burning subtitles.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes one stream of the container.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
}

// Format carries container-level fields.
type Format struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// Args returns the ffprobe arguments used to inspect path.
func Args(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "stream=index,codec_name,codec_type:format=format_name,duration",
		"-of", "json",
		"--", path,
	}
}

// Inspect runs ffprobe on path and decodes its report. A nil runner executes
// binary directly.
func Inspect(ctx context.Context, run Runner, binary, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe: empty path")
	}
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = "ffprobe"
	}
	if run == nil {
		run = runBinary
	}

	output, err := run(ctx, binary, Args(path)...)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe %s: decode report: %w", path, err)
	}
	return result, nil
}

// runBinary keeps stdout for decoding and folds stderr into the error.
func runBinary(ctx context.Context, binary string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return output, nil
}

// HasStream reports whether any stream has the given codec type
// ("video", "audio", "subtitle").
func (r Result) HasStream(codecType string) bool {
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, codecType) {
			return true
		}
	}
	return false
}

// Duration returns the container duration, or false when ffprobe did not
// report a usable one.
func (r Result) Duration() (time.Duration, bool) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}
