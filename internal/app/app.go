// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/GeoffNN/xmanager/internal/config"
	"github.com/GeoffNN/xmanager/internal/job"
	"github.com/GeoffNN/xmanager/internal/meta"
	"github.com/GeoffNN/xmanager/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command
// execution. This structure enables dependency injection for testing and
// allows swapping implementations of various subsystems.
type Dependencies struct {
	Out      io.Writer
	Packager Packager
	Run      RunDeps
	Jobs     JobDeps
	Storage  StorageDeps
}

// Packager turns packageables into runnable executables.
type Packager interface {
	PackageAll(ctx context.Context, pkgs []job.Packageable) ([]job.Executable, error)
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	File    string `short:"f" default:"experiment.yaml" help:"Path to experiment definition"`
	EnvFile string `name:"env-file" help:"Path to .env file"`

	Package     PackageCmd     `cmd:"" help:"Package the executables of an experiment"`
	Run         RunCmd         `cmd:"" help:"Package and run an experiment locally"`
	Experiments ExperimentsCmd `cmd:"" help:"List recorded experiments"`
	Ps          PsCmd          `cmd:"" help:"List containers of a job"`
	Stop        StopCmd        `cmd:"" help:"Stop containers of a job"`
	Version     VersionCmd     `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

type (
	PackageCmd struct {
		Record bool     `help:"Record the experiment in storage"`
		Upload []string `help:"Artifact files to upload with the experiment"`
	}
	RunCmd struct {
		Name string `help:"Job name override, single-job definitions only (default: executable name)"`
	}
	ExperimentsCmd struct{}
	PsCmd          struct {
		Job string `arg:"" help:"Job name"`
	}
	StopCmd struct {
		Job string `arg:"" help:"Job name"`
	}
)

// Run is the main entry point for CLI command execution. It parses the
// command-line arguments, identifies the requested command, and dispatches
// to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	if err := config.EnsureGlobalConfig(); err != nil {
		return exitWithError(out, err)
	}

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name(meta.AppName))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
	} else {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
			}
		}
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"package":     runPackage,
		"run":         runRun,
		"experiments": runExperiments,
		"version":     func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	switch {
	case strings.HasPrefix(command, "ps"):
		return runPs(cli, deps, out), true
	case strings.HasPrefix(command, "stop"):
		return runStop(cli, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.String())
	return 0
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
