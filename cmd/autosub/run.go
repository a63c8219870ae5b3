package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"autosub/internal/audio"
	"autosub/internal/burnin"
	"autosub/internal/config"
	"autosub/internal/logging"
	"autosub/internal/media/ffprobe"
	"autosub/internal/pipeline"
	"autosub/internal/preflight"
	"autosub/internal/services"
	"autosub/internal/services/whisperx"
	"autosub/internal/subtitles"
	"autosub/internal/transcript"
)

// environment carries the collaborators a run builds its components from.
// Tests swap them for fakes; nil runners keep the components' exec defaults.
type environment struct {
	newTranscriber func(cfg *config.Config, logger *slog.Logger) transcript.Transcriber
	runCommand     services.CommandRunner
	runProbe       ffprobe.Runner
	now            func() time.Time
}

func defaultEnvironment() environment {
	return environment{
		newTranscriber: newWhisperXTranscriber,
		now:            time.Now,
	}
}

func newWhisperXTranscriber(cfg *config.Config, logger *slog.Logger) transcript.Transcriber {
	t := cfg.Transcription
	return whisperx.NewService(whisperx.Config{
		Model:       t.Model,
		UVX:         cfg.Tools.UVX,
		CUDAEnabled: t.CUDA,
		VADMethod:   t.VADMethod,
		HFToken:     t.HFToken,
		BatchSize:   t.BatchSize,
		BeamSize:    t.BeamSize,
		ComputeType: t.ComputeType,
		ScratchDir:  cfg.Paths.TempDir,
	}, logger)
}

func runSubtitles(cmd *cobra.Command, env environment, flags *rootFlags, videos []string) error {
	ctx := cmd.Context()

	cfg, configPath, configExists, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	now := time.Now()
	if env.now != nil {
		now = env.now()
	}
	level := cfg.Logging.Level
	if flags.verbose {
		level = "debug"
	}
	logPath := logging.DailyLogPath(cfg.Paths.LogDir, now)
	gate := logging.NewGate()
	stderr := cmd.ErrOrStderr()
	baseLogger, closer, err := logging.New(logging.Options{
		Level:      level,
		Format:     "console",
		Console:    stderr,
		Color:      shouldColorize(stderr),
		FilePath:   logPath,
		FileLevel:  "debug",
		FileFormat: cfg.Logging.Format,
		Gate:       gate,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	runID := uuid.NewString()
	logger := baseLogger.With(logging.String(logging.FieldCorrelationID, runID))
	logger.Debug("configuration loaded",
		logging.String("config_path", configPath),
		logging.Bool("config_exists", configExists),
		logging.String("log_path", logPath),
	)
	if removed := logging.CleanupOldLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, now, logPath); removed > 0 {
		logger.Debug("pruned old log files", logging.Int("removed", removed))
	}

	if err := checkPreflight(logger, cfg, flags.srtOnly); err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "prepare", "create directories", err)
	}

	runner := buildRunner(env, cfg, gate, logger)
	b, runErr := runner.Run(ctx, videos, pipeline.Options{
		Model:     cfg.Transcription.Model,
		OutputDir: cfg.Paths.OutputDir,
		OutputSRT: flags.outputSRT,
		SRTOnly:   flags.srtOnly,
		Verbose:   flags.verbose,
		Task:      transcript.Task(cfg.Transcription.Task),
		Language:  cfg.Transcription.Language,
		KeepGoing: cfg.Run.KeepGoing,
		Tuning:    cfg.Transcription.Tuning,
	})
	if b != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderSummary(b, shouldColorize(out)))
	}
	return runErr
}

func checkPreflight(logger *slog.Logger, cfg *config.Config, srtOnly bool) error {
	results := preflight.RunAll(cfg, preflight.Scope{SRTOnly: srtOnly})
	for _, r := range results {
		if !r.Passed && r.Optional {
			logging.WarnWithContext(logger, fmt.Sprintf("%s unavailable", r.Name), "preflight_optional",
				logging.String("detail", r.Detail),
			)
		}
	}
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, 0, len(failed))
	for _, r := range failed {
		logging.ErrorWithContext(logger, fmt.Sprintf("%s check failed", r.Name), "preflight_failed",
			logging.String("detail", r.Detail),
			logging.String(logging.FieldErrorHint, "run `autosub check` for the full report"),
		)
		names = append(names, fmt.Sprintf("%s (%s)", r.Name, r.Detail))
	}
	return services.Wrap(services.ErrConfiguration, "cli", "preflight", strings.Join(names, "; "), nil)
}

func buildRunner(env environment, cfg *config.Config, gate *logging.Gate, logger *slog.Logger) *pipeline.Runner {
	var transcriber transcript.Transcriber
	if env.newTranscriber != nil {
		transcriber = env.newTranscriber(cfg, logger)
	}

	extractor := audio.NewExtractor(cfg.Tools.FFmpeg, cfg.Paths.TempDir, logger)
	extractor.WithCommandRunner(env.runCommand)

	muxer := burnin.NewMuxer(burnin.Config{
		FFmpeg:     cfg.Tools.FFmpeg,
		FFprobe:    cfg.Tools.FFprobe,
		VideoCodec: cfg.Burnin.VideoCodec,
		AudioCodec: cfg.Burnin.AudioCodec,
	}, logger)
	muxer.WithCommandRunner(env.runCommand)
	muxer.WithProbeRunner(env.runProbe)

	generator := subtitles.NewGenerator(transcriber, gate, cfg.Paths.TempDir, logger)
	return pipeline.NewRunner(extractor, generator, muxer, logger)
}
