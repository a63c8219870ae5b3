package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"autosub/internal/batch"
	"autosub/internal/fileutil"
	"autosub/internal/logging"
	"autosub/internal/services"
	"autosub/internal/transcript"
)

// Request carries the per-run subtitle settings.
type Request struct {
	// Persist writes the SRT to OutputDir instead of the temp directory.
	Persist   bool
	OutputDir string
	Options   transcript.Options
}

// Generator runs the transcriber for one audio file and writes its SRT.
type Generator struct {
	transcriber transcript.Transcriber
	gate        *logging.Gate
	tempDir     string
	logger      *slog.Logger
}

// NewGenerator constructs a generator. gate may be nil, in which case model
// warnings are not suppressed.
func NewGenerator(t transcript.Transcriber, gate *logging.Gate, tempDir string, logger *slog.Logger) *Generator {
	return &Generator{
		transcriber: t,
		gate:        gate,
		tempDir:     tempDir,
		logger:      logging.NewComponentLogger(logger, "subtitles"),
	}
}

// SubtitlePath returns where the SRT for stem is written.
func (g *Generator) SubtitlePath(stem string, req Request) string {
	dir := g.tempDir
	if req.Persist {
		dir = req.OutputDir
	}
	return filepath.Join(dir, stem+".srt")
}

// Generate transcribes item.AudioPath and writes the SRT, recording its path
// and cue count on the item. Transcriber failures are wrapped with
// services.ErrModel.
func (g *Generator) Generate(ctx context.Context, item *batch.Item, req Request) error {
	if g.transcriber == nil {
		return services.Wrap(services.ErrConfiguration, string(batch.StageTranscribe), "generate", "no transcriber configured", nil)
	}
	if strings.TrimSpace(item.AudioPath) == "" {
		return services.Wrap(services.ErrValidation, string(batch.StageTranscribe), "generate",
			fmt.Sprintf("no audio extracted for %s", item.Source), nil)
	}
	logger := logging.WithContext(ctx, g.logger)

	segments, err := g.transcribe(ctx, item.AudioPath, req.Options)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return services.Wrap(services.ErrModel, string(batch.StageTranscribe), "transcribe",
			fmt.Sprintf("transcribe %s", item.Source), err)
	}

	path := g.SubtitlePath(item.Stem, req)
	if err := fileutil.WriteFileAtomic(path, []byte(Render(segments)), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, string(batch.StageTranscribe), "write", fmt.Sprintf("write %s", path), err)
	}

	item.SubtitlePath = path
	item.CueCount = len(segments)
	logger.Debug("subtitles written",
		logging.String("subtitle_path", path),
		logging.Int("cues", len(segments)),
	)
	return nil
}

// transcribe runs the model with warnings suppressed; the restore runs on
// every exit path, panics included.
func (g *Generator) transcribe(ctx context.Context, audioPath string, opts transcript.Options) ([]transcript.Segment, error) {
	restore := g.gate.Suppress()
	defer restore()
	return g.transcriber.Transcribe(ctx, audioPath, opts)
}
