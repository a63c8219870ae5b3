package services

import (
	"context"
	"os/exec"
)

// CommandRunner executes an external tool and returns its combined output.
// The output is returned even when the command fails so callers can surface
// the tool's diagnostics.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecCommand runs name with args using os/exec.
func ExecCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	return cmd.CombinedOutput()
}
