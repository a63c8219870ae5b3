// Package deps reports whether the external executables autosub drives are
// installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an executable a run depends on. Command may be a bare
// name resolved through PATH or an absolute path from the config file.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the outcome of resolving one Requirement.
type Status struct {
	Requirement
	Available bool
	// Path is the resolved executable when Available.
	Path string
	// Detail explains why the executable is unavailable.
	Detail string
}

// Check resolves the requirement's command.
func (r Requirement) Check() Status {
	r.Command = strings.TrimSpace(r.Command)
	r.Description = strings.TrimSpace(r.Description)
	status := Status{Requirement: r}
	if r.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(r.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", r.Command)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}

// CheckBinaries resolves every requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		results[i] = req.Check()
	}
	return results
}
