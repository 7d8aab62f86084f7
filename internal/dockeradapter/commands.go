// Where: internal/dockeradapter/commands.go
// What: Docker CLI subprocess helpers.
// Why: Building and running through the docker binary gives much nicer
//      interactive output than the SDK build endpoint.
package dockeradapter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/GeoffNN/xmanager/internal/runner"
)

// CLI invokes the docker binary through a CommandRunner.
type CLI struct {
	Runner runner.CommandRunner
}

// NewCLI returns a docker CLI adapter using the given runner.
func NewCLI(r runner.CommandRunner) CLI {
	return CLI{Runner: r}
}

// BuildImage runs docker build on a prepared context directory.
func (c CLI) BuildImage(ctx context.Context, contextDir, tag string) error {
	if c.Runner == nil {
		return fmt.Errorf("command runner is required")
	}
	return c.Runner.Run(ctx, contextDir, "docker", "build", "-t", tag, ".")
}

// PullImage pulls an image reference, pinning the tag to latest when the
// reference carries none.
func (c CLI) PullImage(ctx context.Context, ref string) error {
	if c.Runner == nil {
		return fmt.Errorf("command runner is required")
	}
	repo, tag := SplitTag(ref)
	return c.Runner.Run(ctx, "", "docker", "pull", repo+":"+tag)
}

// LoadImage loads a tar-style image archive and returns the loaded
// reference parsed from the docker output.
func (c CLI) LoadImage(ctx context.Context, tarPath string) (string, error) {
	if c.Runner == nil {
		return "", fmt.Errorf("command runner is required")
	}
	out, err := c.Runner.RunOutput(ctx, "", "docker", "load", "-i", tarPath)
	if err != nil {
		return "", fmt.Errorf("docker load %s: %w", tarPath, err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Loaded image: "); ok {
			return strings.TrimSpace(rest), nil
		}
		if rest, ok := strings.CutPrefix(line, "Loaded image ID: "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", fmt.Errorf("docker load %s: no image reference in output", tarPath)
}

// RunOptions tunes container creation beyond the image and arguments.
type RunOptions struct {
	// Mounts maps host paths to container paths.
	Mounts map[string]string
	// Ports maps host ports to container ports.
	Ports map[int]int
}

// RunContainer starts a detached container for a job. The container is
// labeled so it can be found and stopped later.
func (c CLI) RunContainer(ctx context.Context, image, job string, args []string, env map[string]string, opts RunOptions) error {
	if c.Runner == nil {
		return fmt.Errorf("command runner is required")
	}
	cmdArgs := []string{
		"run", "--detach", "--rm",
		"--label", fmt.Sprintf("%s=%s", JobLabel, job),
	}
	for _, key := range sortedKeys(env) {
		cmdArgs = append(cmdArgs, "-e", fmt.Sprintf("%s=%s", key, env[key]))
	}
	for _, host := range sortedKeys(opts.Mounts) {
		cmdArgs = append(cmdArgs, "-v", fmt.Sprintf("%s:%s", host, opts.Mounts[host]))
	}
	for _, host := range sortedPorts(opts.Ports) {
		cmdArgs = append(cmdArgs, "-p", fmt.Sprintf("%d:%d", host, opts.Ports[host]))
	}
	cmdArgs = append(cmdArgs, image)
	cmdArgs = append(cmdArgs, args...)
	return c.Runner.Run(ctx, "", "docker", cmdArgs...)
}

func sortedPorts(m map[int]int) []int {
	ports := make([]int, 0, len(m))
	for port := range m {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
