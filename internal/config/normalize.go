package config

import (
	"fmt"
	"os"
	"strings"

	"autosub/internal/language"
)

// Normalize expands paths, trims values, and fills defaults. The CLI calls it
// again after applying flag overrides.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	if err := c.normalizeTranscription(); err != nil {
		return err
	}
	c.normalizeBurnin()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = os.TempDir()
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = orDefault(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = orDefault(c.Tools.FFprobe, defaultFFprobe)
	c.Tools.UVX = orDefault(c.Tools.UVX, defaultUVX)
}

func (c *Config) normalizeTranscription() error {
	t := &c.Transcription
	t.Model = orDefault(t.Model, defaultModel)
	t.Task = strings.ToLower(orDefault(t.Task, defaultTask))
	t.VADMethod = strings.ToLower(orDefault(t.VADMethod, defaultVADMethod))
	t.ComputeType = strings.TrimSpace(t.ComputeType)

	lang, err := language.Normalize(t.Language)
	if err != nil {
		return fmt.Errorf("transcription.language: %w", err)
	}
	t.Language = lang

	t.HFToken = strings.TrimSpace(t.HFToken)
	if t.HFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			t.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			t.HFToken = strings.TrimSpace(value)
		}
	}

	if len(t.Tuning) > 0 {
		tuning := make(map[string]string, len(t.Tuning))
		for key, value := range t.Tuning {
			key = strings.TrimLeft(strings.TrimSpace(key), "-")
			if key == "" {
				continue
			}
			tuning[key] = strings.TrimSpace(value)
		}
		t.Tuning = tuning
	}
	return nil
}

func (c *Config) normalizeBurnin() {
	c.Burnin.VideoCodec = orDefault(c.Burnin.VideoCodec, defaultVideoCodec)
	c.Burnin.AudioCodec = orDefault(c.Burnin.AudioCodec, defaultAudioCodec)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(orDefault(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(orDefault(c.Logging.Level, defaultLogLevel))
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
