// Where: internal/bazel/bazel.go
// What: Bazel build client for build-target specs.
// Why: Turn labels into artifact paths through the bazel binary.
package bazel

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/GeoffNN/xmanager/internal/runner"
)

// DefaultCommand is the bazel binary used when the config names none.
const DefaultCommand = "bazel"

// Client shells out to bazel inside a workspace.
type Client struct {
	Command   string
	Workspace string
	Runner    runner.CommandRunner
}

// NewClient returns a bazel client. Command falls back to DefaultCommand
// and the workspace is discovered lazily when empty.
func NewClient(command, workspace string, r runner.CommandRunner) Client {
	if command == "" {
		command = DefaultCommand
	}
	return Client{Command: command, Workspace: workspace, Runner: r}
}

// WorkspaceRoot returns the workspace directory. When a launch script runs
// under bazel itself, BUILD_WORKSPACE_DIRECTORY points at the root where
// the build was initiated; otherwise bazel is queried.
func (c Client) WorkspaceRoot(ctx context.Context) (string, error) {
	if c.Workspace != "" {
		return c.Workspace, nil
	}
	if dir := os.Getenv("BUILD_WORKSPACE_DIRECTORY"); dir != "" {
		return dir, nil
	}
	if c.Runner == nil {
		return "", fmt.Errorf("command runner is required")
	}
	out, err := c.Runner.RunOutput(ctx, "", c.Command, "info", "workspace")
	if err != nil {
		return "", fmt.Errorf("bazel info workspace: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Build builds a single label and returns the paths of its output files.
func (c Client) Build(ctx context.Context, label string) ([]string, error) {
	if err := ValidateLabel(label); err != nil {
		return nil, err
	}
	if c.Runner == nil {
		return nil, fmt.Errorf("command runner is required")
	}
	root, err := c.WorkspaceRoot(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Runner.Run(ctx, root, c.Command, "build", label); err != nil {
		return nil, fmt.Errorf("bazel build %s: %w", label, err)
	}
	out, err := c.Runner.RunOutput(ctx, root, c.Command, "cquery", label, "--output=files")
	if err != nil {
		return nil, fmt.Errorf("bazel cquery %s: %w", label, err)
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("bazel build %s produced no output files", label)
	}
	return files, nil
}

// ValidateLabel checks the //package:target label shape. Target existence
// is bazel's concern, not ours.
func ValidateLabel(label string) error {
	if !strings.HasPrefix(label, "//") {
		return fmt.Errorf("label %q must start with //", label)
	}
	if strings.Count(label, ":") > 1 {
		return fmt.Errorf("label %q has more than one target separator", label)
	}
	return nil
}

// TargetName returns the target part of a label. When the label carries no
// explicit target, the last package component is implied.
func TargetName(label string) string {
	if i := strings.LastIndex(label, ":"); i >= 0 {
		return label[i+1:]
	}
	if i := strings.LastIndex(label, "/"); i >= 0 {
		return label[i+1:]
	}
	return strings.TrimPrefix(label, "//")
}
