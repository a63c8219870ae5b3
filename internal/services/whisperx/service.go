package whisperx

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"autosub/internal/fileutil"
	"autosub/internal/logging"
	"autosub/internal/services"
	"autosub/internal/transcript"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg    Config
	logger *slog.Logger
	run    services.CommandRunner
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.UVX) == "" {
		cfg.UVX = UVXCommand
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "whisperx"),
		run:    runWhisperX,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner services.CommandRunner) {
	if s != nil && runner != nil {
		s.run = runner
	}
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Transcribe runs WhisperX on audioPath and returns its segments in order.
func (s *Service) Transcribe(ctx context.Context, audioPath string, opts transcript.Options) ([]transcript.Segment, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, services.Wrap(services.ErrValidation, "transcribe", "whisperx", "audio path required", nil)
	}

	scratch, err := os.MkdirTemp(s.cfg.ScratchDir, "whisperx-")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "transcribe", "whisperx", "create scratch directory", err)
	}
	defer os.RemoveAll(scratch)

	args := s.buildArgs(audioPath, scratch, opts)
	if s.logger != nil {
		s.logger.Debug("executing whisperx",
			logging.String("audio_path", audioPath),
			logging.String("model", s.cfg.Model),
			logging.String("command", s.cfg.UVX+" "+strings.Join(args, " ")),
		)
	}

	output, runErr := s.run(ctx, s.cfg.UVX, args...)
	s.relayOutput(output)
	if runErr != nil {
		return nil, services.Wrap(services.ErrModel, "transcribe", "whisperx", "WhisperX transcription failed",
			fmt.Errorf("%w: %s", runErr, lastLines(output, 5)))
	}

	jsonPath := filepath.Join(scratch, fileutil.Stem(audioPath)+".json")
	segments, err := LoadSegments(jsonPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, services.Wrap(services.ErrNotFound, "transcribe", "whisperx", "WhisperX exited cleanly but wrote no transcript", err)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrModel, "transcribe", "whisperx", "WhisperX produced no readable output", err)
	}
	return segments, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string, opts transcript.Options) []string {
	args := make([]string, 0, 32)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	task := opts.Task
	if task == "" {
		task = transcript.TaskTranscribe
	}

	args = append(args,
		Package,
		source,
		"--model", s.cfg.Model,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--task", string(task),
		"--verbose", pythonBool(opts.Verbose),
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if lang := strings.TrimSpace(opts.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if s.cfg.BatchSize > 0 {
		args = append(args, "--batch_size", strconv.Itoa(s.cfg.BatchSize))
	}
	if s.cfg.BeamSize > 0 {
		args = append(args, "--beam_size", strconv.Itoa(s.cfg.BeamSize))
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
		if s.cfg.ComputeType != "" {
			args = append(args, "--compute_type", s.cfg.ComputeType)
		}
	} else {
		computeType := s.cfg.ComputeType
		if computeType == "" {
			computeType = CPUComputeType
		}
		args = append(args, "--device", CPUDevice, "--compute_type", computeType)
	}

	keys := make([]string, 0, len(opts.Tuning))
	for key := range opts.Tuning {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "--"+key, opts.Tuning[key])
	}
	return args
}

// relayOutput re-logs WhisperX output. Python warnings surface as WARN so
// they are subject to the caller's warning suppression.
func (s *Service) relayOutput(output []byte) {
	if s.logger == nil || len(output) == 0 {
		return
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isWarningLine(line) {
			s.logger.Warn("model warning", logging.String("line", line))
			continue
		}
		s.logger.Debug("model output", logging.String("line", line))
	}
}

func pythonBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

var (
	// "path.py:12: UserWarning: ..." as printed by the warnings module.
	pythonWarningPattern = regexp.MustCompile(`\b[A-Z][A-Za-z]*Warning: `)
	// "Warning: ..." or "WARNING:root:..." from print or logging.
	prefixWarningPattern = regexp.MustCompile(`^(?i:warning)(:|\s)`)
	// "[00:01.000 --> 00:02.500] text" segment echo under --verbose.
	segmentEchoPattern = regexp.MustCompile(`^\[\d+:\d+(:\d+)?\.\d+ --> `)
)

func isWarningLine(line string) bool {
	if segmentEchoPattern.MatchString(line) {
		return false
	}
	return prefixWarningPattern.MatchString(line) || pythonWarningPattern.MatchString(line)
}

func lastLines(output []byte, n int) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

func runWhisperX(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	return cmd.CombinedOutput()
}

type whisperXPayload struct {
	Segments []transcript.Segment `json:"segments"`
}

// LoadSegments loads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]transcript.Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}
