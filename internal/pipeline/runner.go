package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"autosub/internal/batch"
	"autosub/internal/fileutil"
	"autosub/internal/language"
	"autosub/internal/logging"
	"autosub/internal/services"
	"autosub/internal/subtitles"
)

// ErrItemsFailed reports that a KeepGoing run finished with failed files.
var ErrItemsFailed = errors.New("one or more videos failed")

// Extractor is the audio extraction stage.
type Extractor interface {
	ExtractAll(ctx context.Context, b *batch.Batch) error
}

// SubtitleGenerator is the transcription stage for one item.
type SubtitleGenerator interface {
	Generate(ctx context.Context, item *batch.Item, req subtitles.Request) error
}

// Muxer is the burn-in stage for one item.
type Muxer interface {
	Mux(ctx context.Context, item *batch.Item, outputDir string) error
}

// Runner wires the three stages together.
type Runner struct {
	extractor Extractor
	generator SubtitleGenerator
	muxer     Muxer
	logger    *slog.Logger
}

// NewRunner constructs a pipeline runner.
func NewRunner(extractor Extractor, generator SubtitleGenerator, muxer Muxer, logger *slog.Logger) *Runner {
	return &Runner{
		extractor: extractor,
		generator: generator,
		muxer:     muxer,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run processes paths and returns the batch with every item's outcome. The
// batch is non-nil whenever the inputs were valid, even on error.
func (r *Runner) Run(ctx context.Context, paths []string, opts Options) (*batch.Batch, error) {
	started := time.Now()
	b, err := batch.New(paths)
	if err != nil {
		return nil, err
	}

	outputDir := strings.TrimSpace(opts.OutputDir)
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return b, services.Wrap(services.ErrConfiguration, "pipeline", "prepare", fmt.Sprintf("create output directory %s", outputDir), err)
	}
	lock, err := fileutil.LockDir(outputDir)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, fileutil.ErrLocked) {
			marker = services.ErrValidation
		}
		return b, services.Wrap(marker, "pipeline", "prepare", fmt.Sprintf("lock output directory %s", outputDir), err)
	}
	r.logger.Debug("output directory locked", logging.String("lock_path", lock.Path()))
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Debug("release output lock", logging.Error(err))
		}
	}()

	if _, forced := EffectiveLanguage(opts.Model, opts.Language); forced {
		logging.WarnWithContext(r.logger, fmt.Sprintf("%s is an English-only model, forcing English detection.", opts.Model), "language_forced",
			logging.String("requested_language", opts.Language),
			logging.String(logging.FieldImpact, "subtitles are transcribed as English"),
			logging.String(logging.FieldErrorHint, "choose a multilingual model to transcribe other languages"),
		)
	}

	lang, _ := EffectiveLanguage(opts.Model, opts.Language)
	if lang == "" {
		lang = language.Auto
	}
	r.logger.Debug("transcription settings",
		logging.String("model", opts.Model),
		logging.String("task", string(opts.TranscriptOptions().Task)),
		logging.String("language", language.DisplayName(lang)),
		logging.Bool("persist_subtitles", opts.PersistSubtitles()),
		logging.Bool("srt_only", opts.SRTOnly),
	)
	r.logger.Info("extracting audio",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.Int("videos", len(b.Items)),
	)
	if err := r.extractor.ExtractAll(services.WithStage(ctx, string(batch.StageExtract)), b); err != nil {
		return b, err
	}

	req := subtitles.Request{
		Persist:   opts.PersistSubtitles(),
		OutputDir: outputDir,
		Options:   opts.TranscriptOptions(),
	}
	err = r.eachPending(ctx, b, batch.StageTranscribe, opts.KeepGoing, func(itemCtx context.Context, logger *slog.Logger, item *batch.Item) error {
		logger.Info("generating subtitles")
		return r.generator.Generate(itemCtx, item, req)
	})
	if err != nil {
		return b, err
	}

	if opts.SRTOnly {
		return b, r.finish(b, opts, started)
	}

	err = r.eachPending(ctx, b, batch.StageMux, opts.KeepGoing, func(itemCtx context.Context, logger *slog.Logger, item *batch.Item) error {
		logger.Info(fmt.Sprintf("Adding subtitles to %s...", item.Stem))
		return r.muxer.Mux(itemCtx, item, outputDir)
	})
	if err != nil {
		return b, err
	}
	return b, r.finish(b, opts, started)
}

// eachPending runs fn for every pending item. Failures abort unless
// keepGoing, in which case the item is marked failed and the stage moves on.
func (r *Runner) eachPending(ctx context.Context, b *batch.Batch, stage batch.Stage, keepGoing bool, fn func(context.Context, *slog.Logger, *batch.Item) error) error {
	for _, item := range b.Pending() {
		if err := ctx.Err(); err != nil {
			return err
		}
		itemCtx := services.WithStage(services.WithSource(ctx, item.Source), string(stage))
		logger := logging.WithContext(itemCtx, r.logger)

		err := fn(itemCtx, logger, item)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		item.Fail(stage, err)
		if !keepGoing {
			return err
		}
		logging.ErrorWithContext(logger, fmt.Sprintf("%s failed; skipping video", stage), string(stage)+"_failed",
			logging.Error(err),
			logging.String("error_kind", services.Kind(err)),
		)
	}
	return nil
}

func (r *Runner) finish(b *batch.Batch, opts Options, started time.Time) error {
	failed := b.Failures()
	r.logger.Info("run finished",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("videos", len(b.Items)),
		logging.Int("failed", len(failed)),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	if opts.KeepGoing && len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrItemsFailed, len(failed), len(b.Items))
	}
	return nil
}
