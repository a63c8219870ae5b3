package config

import (
	"errors"
	"fmt"
	"strings"

	"autosub/internal/services/whisperx"
	"autosub/internal/transcript"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	if !whisperx.IsKnownModel(t.Model) {
		return fmt.Errorf("transcription.model: unknown model %q (choose from %s)", t.Model, strings.Join(whisperx.AvailableModels(), ", "))
	}
	if _, err := transcript.ParseTask(t.Task); err != nil {
		return fmt.Errorf("transcription.task: %w", err)
	}
	switch t.VADMethod {
	case whisperx.VADMethodSilero, whisperx.VADMethodPyannote:
	default:
		return fmt.Errorf("transcription.vad_method: unsupported value %q (choose from silero, pyannote)", t.VADMethod)
	}
	if t.BatchSize < 0 {
		return errors.New("transcription.batch_size must be >= 0")
	}
	if t.BeamSize < 0 {
		return errors.New("transcription.beam_size must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (choose from console, json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}
