package config

import "os"

const (
	defaultConfigPath       = "~/.config/autosub/config.toml"
	projectConfigName       = "autosub.toml"
	defaultOutputDir        = "."
	defaultLogDir           = "~/.local/share/autosub/logs"
	defaultFFmpeg           = "ffmpeg"
	defaultFFprobe          = "ffprobe"
	defaultUVX              = "uvx"
	defaultModel            = "small"
	defaultTask             = "transcribe"
	defaultLanguage         = "auto"
	defaultVADMethod        = "silero"
	defaultVideoCodec       = "libx264"
	defaultAudioCodec       = "aac"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TempDir:   os.TempDir(),
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
			UVX:     defaultUVX,
		},
		Transcription: Transcription{
			Model:     defaultModel,
			Task:      defaultTask,
			Language:  defaultLanguage,
			VADMethod: defaultVADMethod,
		},
		Burnin: Burnin{
			VideoCodec: defaultVideoCodec,
			AudioCodec: defaultAudioCodec,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
