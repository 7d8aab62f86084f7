// Where: internal/app/run.go
// What: Run command helpers.
// Why: Launch packaged executables on the local daemon or host.
package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/GeoffNN/xmanager/internal/dockeradapter"
	"github.com/GeoffNN/xmanager/internal/executable"
	"github.com/GeoffNN/xmanager/internal/executors"
	"github.com/GeoffNN/xmanager/internal/job"
	"github.com/GeoffNN/xmanager/internal/runner"
)

// ContainerLauncher starts detached containers for image executables.
type ContainerLauncher interface {
	RunContainer(ctx context.Context, image, job string, args []string, env map[string]string, opts dockeradapter.RunOptions) error
}

// RunDeps bundles the launch backends for the run command.
type RunDeps struct {
	Launcher ContainerLauncher
	Runner   runner.CommandRunner
}

func runRun(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := context.Background()

	launchables, _, err := packageDefinition(ctx, cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	// A shared override would give every container the same job label and
	// make stop conflate them.
	if cli.Run.Name != "" && len(launchables) > 1 {
		return exitWithError(out, fmt.Errorf("--name applies to single-job definitions, this one has %d jobs", len(launchables)))
	}

	for _, l := range launchables {
		j := job.Job{
			Executable: l.Exe,
			Executor:   l.Pkg.Executor,
			Name:       cli.Run.Name,
			Args:       l.Pkg.Args,
			Env:        l.Pkg.Env,
		}
		if err := launch(ctx, deps.Run, l, j); err != nil {
			return exitWithError(out, err)
		}
		fmt.Fprintf(out, "Started %s (%s)\n", j.DisplayName(), l.Exe.Target)
	}
	return 0
}

func launch(ctx context.Context, deps RunDeps, l launchable, j job.Job) error {
	name := j.DisplayName()
	args, env := j.Args, j.Env
	// Source directories bake args and env into the image at build time.
	if _, ok := l.Pkg.Spec.(executable.SourceDirectory); ok {
		args, env = nil, nil
	}

	opts := dockeradapter.RunOptions{}
	if local, ok := j.Executor.(executors.LocalSpec); ok {
		opts.Mounts = local.Options.Mounts
		opts.Ports = local.Options.Ports
	}

	switch l.Exe.Kind {
	case job.KindImage:
		if deps.Launcher == nil {
			return fmt.Errorf("container launcher is required")
		}
		return deps.Launcher.RunContainer(ctx, l.Exe.Target, name, args, env, opts)
	case job.KindBinary:
		if deps.Runner == nil {
			return fmt.Errorf("command runner is required")
		}
		cmdName, argv := binaryCommand(l.Exe.Target, args, env)
		return deps.Runner.Run(ctx, "", cmdName, argv...)
	default:
		return fmt.Errorf("cannot launch executable kind %q", l.Exe.Kind)
	}
}

// binaryCommand builds the argv for a host binary. Env vars go through
// env(1) so the runner interface stays environment-free.
func binaryCommand(target string, args []string, env map[string]string) (string, []string) {
	if len(env) == 0 {
		return target, args
	}
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	argv := make([]string, 0, len(env)+1+len(args))
	for _, key := range keys {
		argv = append(argv, key+"="+env[key])
	}
	argv = append(argv, target)
	argv = append(argv, args...)
	return "env", argv
}
