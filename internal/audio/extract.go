// Package audio extracts speech-model-ready audio tracks from input videos.
package audio

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"autosub/internal/batch"
	"autosub/internal/logging"
	"autosub/internal/services"
)

// Audio format handed to the speech model: mono 16 kHz signed 16-bit PCM.
const (
	SampleRate = 16000
	Channels   = 1
	Codec      = "pcm_s16le"
)

// Extractor turns each input video into <tempDir>/<stem>.wav with ffmpeg.
type Extractor struct {
	ffmpeg  string
	tempDir string
	logger  *slog.Logger
	run     services.CommandRunner
}

// NewExtractor constructs an extractor writing into tempDir.
func NewExtractor(ffmpeg, tempDir string, logger *slog.Logger) *Extractor {
	if strings.TrimSpace(ffmpeg) == "" {
		ffmpeg = "ffmpeg"
	}
	return &Extractor{
		ffmpeg:  ffmpeg,
		tempDir: tempDir,
		logger:  logging.NewComponentLogger(logger, "audio"),
		run:     services.ExecCommand,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (e *Extractor) WithCommandRunner(r services.CommandRunner) {
	if e != nil && r != nil {
		e.run = r
	}
}

// OutputPath returns where the audio for stem is written.
func (e *Extractor) OutputPath(stem string) string {
	return filepath.Join(e.tempDir, stem+".wav")
}

// Args returns the ffmpeg arguments extracting src into dst.
func Args(src, dst string) []string {
	return []string{
		"-y", "-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", src,
		"-vn",
		"-ac", fmt.Sprint(Channels),
		"-ar", fmt.Sprint(SampleRate),
		"-c:a", Codec,
		dst,
	}
}

// Extract writes the audio for item, overwriting any previous file, and
// records the path on the item.
func (e *Extractor) Extract(ctx context.Context, item *batch.Item) error {
	dst := e.OutputPath(item.Stem)
	args := Args(item.Source, dst)
	logger := logging.WithContext(ctx, e.logger)
	logger.Debug("executing ffmpeg", logging.String("command", e.ffmpeg+" "+strings.Join(args, " ")))

	output, err := e.run(ctx, e.ffmpeg, args...)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(services.ErrExternalTool, string(batch.StageExtract), "ffmpeg",
			fmt.Sprintf("extract audio from %s", item.Source), fmt.Errorf("%w: %s", err, detail))
	}
	item.AudioPath = dst
	return nil
}

// ExtractAll extracts audio for every pending item. A failing file is logged
// with ffmpeg's output and marked failed; the rest continue. Only context
// cancellation stops the batch.
func (e *Extractor) ExtractAll(ctx context.Context, b *batch.Batch) error {
	for _, item := range b.Pending() {
		if err := ctx.Err(); err != nil {
			return err
		}
		itemCtx := services.WithStage(services.WithSource(ctx, item.Source), string(batch.StageExtract))
		logger := logging.WithContext(itemCtx, e.logger)
		logger.Info("extracting audio")

		if err := e.Extract(itemCtx, item); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			item.Fail(batch.StageExtract, err)
			logging.ErrorWithContext(logger, "audio extraction failed; skipping video", "extract_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the file exists and contains an audio stream"),
			)
			continue
		}
		logger.Debug("audio extracted", logging.String("audio_path", item.AudioPath))
	}
	return nil
}
