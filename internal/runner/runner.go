// Where: internal/runner/runner.go
// What: Shell command execution interface.
// Why: Provide a minimal, testable seam for docker and bazel subprocesses.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner defines the interface for executing shell commands.
// Implementations run commands in the specified directory.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
	RunQuiet(ctx context.Context, dir, name string, args ...string) error
	RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes a command with inherited stdout/stderr.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunQuiet executes a command and only shows output if it fails.
func (ExecRunner) RunQuiet(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s %s\n%s\n", name, strings.Join(args, " "), string(out))
		return err
	}
	return nil
}

// RunOutput executes a command and returns its stdout. Stderr is inherited.
func (ExecRunner) RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	return cmd.Output()
}
