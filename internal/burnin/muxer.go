// Package burnin renders subtitles into the video frames of each input and
// writes the result as an MP4 next to the other run outputs.
package burnin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"autosub/internal/batch"
	"autosub/internal/logging"
	"autosub/internal/media/ffprobe"
	"autosub/internal/services"
)

// ForceStyle is the libass style override applied to every burned-in cue:
// a translucent black box behind the text.
const ForceStyle = "OutlineColour=&H40000000,BorderStyle=3"

// Config names the tools and encoders used for burn-in.
type Config struct {
	FFmpeg     string
	FFprobe    string
	VideoCodec string
	AudioCodec string
}

// Muxer burns an SRT into its source video with ffmpeg's subtitles filter.
type Muxer struct {
	cfg    Config
	logger *slog.Logger
	run    services.CommandRunner
	probe  ffprobe.Runner
}

// NewMuxer constructs a muxer, filling unset tools and codecs with defaults.
func NewMuxer(cfg Config, logger *slog.Logger) *Muxer {
	if strings.TrimSpace(cfg.FFmpeg) == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if strings.TrimSpace(cfg.FFprobe) == "" {
		cfg.FFprobe = "ffprobe"
	}
	if strings.TrimSpace(cfg.VideoCodec) == "" {
		cfg.VideoCodec = "libx264"
	}
	if strings.TrimSpace(cfg.AudioCodec) == "" {
		cfg.AudioCodec = "aac"
	}
	return &Muxer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "burnin"),
		run:    services.ExecCommand,
	}
}

// WithCommandRunner allows injecting a custom ffmpeg runner for tests.
func (m *Muxer) WithCommandRunner(r services.CommandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// WithProbeRunner allows injecting a custom ffprobe runner for tests.
func (m *Muxer) WithProbeRunner(r ffprobe.Runner) {
	if m != nil && r != nil {
		m.probe = r
	}
}

// OutputPath returns the subtitled video path for stem.
func OutputPath(outputDir, stem string) string {
	return filepath.Join(outputDir, stem+".mp4")
}

// FilterGraph builds the filter_complex that burns subtitlePath into the
// first video stream and pairs it with the first audio stream.
func FilterGraph(subtitlePath string) string {
	return fmt.Sprintf("[0:v]subtitles=filename=%s:force_style=%s[sv];[sv][0:a]concat=n=1:v=1:a=1[v][a]",
		filterValue(subtitlePath), filterValue(ForceStyle))
}

// filterValue escapes value for both parse levels ffmpeg applies to a
// filter_complex option: the filter's own key=value list, then the graph.
func filterValue(value string) string {
	option := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
	).Replace(value)
	return "'" + strings.ReplaceAll(option, "'", `'\''`) + "'"
}

// Args returns the ffmpeg arguments rendering item into dst.
func (m *Muxer) Args(source, subtitlePath, dst string) []string {
	return []string{
		"-y", "-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", source,
		"-filter_complex", FilterGraph(subtitlePath),
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", m.cfg.VideoCodec,
		"-c:a", m.cfg.AudioCodec,
		"-f", "mp4",
		dst,
	}
}

// Mux writes <outputDir>/<stem>.mp4 for item, replacing any existing file.
// The source must carry at least one video and one audio stream.
func (m *Muxer) Mux(ctx context.Context, item *batch.Item, outputDir string) error {
	const stage = string(batch.StageMux)
	if strings.TrimSpace(item.SubtitlePath) == "" {
		return services.Wrap(services.ErrValidation, stage, "mux", fmt.Sprintf("no subtitles for %s", item.Source), nil)
	}
	logger := logging.WithContext(ctx, m.logger)

	probe, err := ffprobe.Inspect(ctx, m.probe, m.cfg.FFprobe, item.Source)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stage, "ffprobe", fmt.Sprintf("inspect %s", item.Source), err)
	}
	if d, ok := probe.Duration(); ok {
		logger.Debug("probed source", logging.Duration("duration", d), logging.String("format", probe.Format.FormatName))
	}
	if !probe.HasStream("video") {
		return services.Wrap(services.ErrValidation, stage, "mux", fmt.Sprintf("%s has no video stream", item.Source), nil)
	}
	if !probe.HasStream("audio") {
		return services.Wrap(services.ErrValidation, stage, "mux", fmt.Sprintf("%s has no audio stream", item.Source), nil)
	}

	out := OutputPath(outputDir, item.Stem)
	partial := filepath.Join(outputDir, "."+item.Stem+".partial.mp4")
	args := m.Args(item.Source, item.SubtitlePath, partial)
	logger.Debug("executing ffmpeg", logging.String("command", m.cfg.FFmpeg+" "+strings.Join(args, " ")))

	output, err := m.run(ctx, m.cfg.FFmpeg, args...)
	if err != nil {
		_ = os.Remove(partial)
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(services.ErrExternalTool, stage, "ffmpeg",
			fmt.Sprintf("burn subtitles into %s", item.Source), fmt.Errorf("%w: %s", err, detail))
	}
	if err := os.Rename(partial, out); err != nil {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrTransient, stage, "rename", fmt.Sprintf("finalize %s", out), err)
	}

	item.OutputPath = out
	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	logger.Info(fmt.Sprintf("Saved subtitled video to %s", abs), logging.String("output_path", abs))
	return nil
}
