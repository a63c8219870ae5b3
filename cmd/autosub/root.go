package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autosub/internal/config"
	"autosub/internal/language"
	"autosub/internal/services/whisperx"
	"autosub/internal/transcript"
)

// rootFlags holds the parsed values of the root command flags.
type rootFlags struct {
	configPath string
	model      string
	outputDir  string
	outputSRT  bool
	srtOnly    bool
	verbose    bool
	task       string
	language   string
	keepGoing  bool
}

func newRootCommand(env environment) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "autosub [flags] <video>...",
		Short: "Generate subtitles for videos and burn them in",
		Long: "autosub extracts the audio of each video, transcribes it with WhisperX into an SRT\n" +
			"subtitle file, and writes a copy of the video with the subtitles burned in.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(cmd, errors.New("at least one video path is required"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubtitles(cmd, env, flags, args)
		},
	}
	rootCmd.SetFlagErrorFunc(usageError)

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")

	f := rootCmd.Flags()
	f.Var(newModelValue(&flags.model, whisperx.DefaultModel), "model", "Name of the WhisperX model to use ("+strings.Join(whisperx.AvailableModels(), ", ")+")")
	f.StringVarP(&flags.outputDir, "output_dir", "o", ".", "Directory to save the outputs")
	f.Var(newBoolValue(&flags.outputSRT, false), "output_srt", "Whether to write the .srt file next to the output videos")
	f.Var(newBoolValue(&flags.srtOnly, false), "srt_only", "Only generate the .srt file and skip the subtitled video")
	f.Var(newBoolValue(&flags.verbose, false), "verbose", "Print debug messages and model progress")
	f.Var(newTaskValue(&flags.task, string(transcript.TaskTranscribe)), "task", "Transcribe in the spoken language or translate to English (transcribe, translate)")
	f.Var(newLanguageValue(&flags.language, language.Auto), "language", "Spoken language code or name, or \"auto\" to detect it")
	f.Var(newBoolValue(&flags.keepGoing, false), "keep_going", "Skip videos that fail at any stage instead of aborting the run")

	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newLanguagesCommand())

	return rootCmd
}

// usageError appends the command usage to err so parse failures show how to
// invoke the command.
func usageError(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w\n\n%s", err, strings.TrimRight(cmd.UsageString(), "\n"))
}

// loadConfig reads the config file and applies every flag the user set.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, string, bool, error) {
	cfg, path, exists, err := config.Load(flags.configPath)
	if err != nil {
		return nil, "", false, fmt.Errorf("load config: %w", err)
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("model") {
		cfg.Transcription.Model = flags.model
	}
	if changed("output_dir") {
		cfg.Paths.OutputDir = flags.outputDir
	}
	if changed("task") {
		cfg.Transcription.Task = flags.task
	}
	if changed("language") {
		cfg.Transcription.Language = flags.language
	}
	if changed("keep_going") {
		cfg.Run.KeepGoing = flags.keepGoing
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, exists, nil
}
