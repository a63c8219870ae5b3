package preflight

import (
	"autosub/internal/config"
	"autosub/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional results never fail a run.
	Optional bool
	Detail   string
}

// Scope narrows the checks to what a run will actually use.
type Scope struct {
	// SRTOnly skips the tools only the burn-in stage needs.
	SRTOnly bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config, scope Scope) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range deps.CheckBinaries(Requirements(cfg, scope)) {
		results = append(results, fromStatus(status))
	}
	results = append(results, CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckDirectoryAccess("Temp directory", cfg.Paths.TempDir))
	return results
}

// Requirements lists the executables a run needs.
func Requirements(cfg *config.Config, scope Scope) []deps.Requirement {
	reqs := []deps.Requirement{
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Required for audio extraction and burn-in"},
		{Name: "uvx", Command: cfg.Tools.UVX, Description: "Required for WhisperX-driven transcription"},
	}
	reqs = append(reqs, deps.Requirement{
		Name:        "FFprobe",
		Command:     cfg.Tools.FFprobe,
		Description: "Required for stream checks before burn-in",
		Optional:    scope.SRTOnly,
	})
	return reqs
}

// Failed returns the non-optional results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}

func fromStatus(status deps.Status) Result {
	result := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional}
	if status.Available {
		result.Detail = status.Path
	} else {
		result.Detail = status.Detail
	}
	return result
}
