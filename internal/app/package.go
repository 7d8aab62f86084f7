// Where: internal/app/package.go
// What: Package command helpers.
// Why: Orchestrate packaging and experiment recording in a testable way.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/GeoffNN/xmanager/internal/definition"
	"github.com/GeoffNN/xmanager/internal/job"
	"github.com/GeoffNN/xmanager/internal/storage"
)

// ExperimentRecorder persists experiment metadata.
type ExperimentRecorder interface {
	EnsureTable(ctx context.Context) error
	CreateExperiment(ctx context.Context, title string) (storage.Experiment, error)
	RecordWorkUnit(ctx context.Context, unit storage.WorkUnit) error
	ListExperiments(ctx context.Context) ([]storage.Experiment, error)
}

// ArtifactUploader pushes artifact files into object storage.
type ArtifactUploader interface {
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, experimentID, filePath string) (string, error)
}

// StorageDeps bundles the optional experiment storage backends.
type StorageDeps struct {
	Experiments ExperimentRecorder
	Artifacts   ArtifactUploader
}

// launchable pairs a packaged executable with the packageable it came
// from, so run-time parameters survive packaging.
type launchable struct {
	Exe job.Executable
	Pkg job.Packageable
}

func runPackage(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := context.Background()

	launchables, def, err := packageDefinition(ctx, cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	for _, l := range launchables {
		fmt.Fprintf(out, "%s\t%s\t%s\n", l.Exe.Name, l.Exe.Kind, l.Exe.Target)
	}

	if !cli.Package.Record {
		return 0
	}
	if err := recordExperiment(ctx, cli, deps, def, launchables, out); err != nil {
		return exitWithError(out, err)
	}
	return 0
}

// packageDefinition parses the definition file and packages every entry.
func packageDefinition(ctx context.Context, cli CLI, deps Dependencies) ([]launchable, definition.Definition, error) {
	if deps.Packager == nil {
		return nil, definition.Definition{}, fmt.Errorf("packager is required")
	}
	def, err := definition.ParseFile(cli.File)
	if err != nil {
		return nil, definition.Definition{}, err
	}
	pkgs, err := def.Build()
	if err != nil {
		return nil, definition.Definition{}, err
	}
	executables, err := deps.Packager.PackageAll(ctx, pkgs)
	if err != nil {
		return nil, definition.Definition{}, err
	}
	if len(executables) != len(pkgs) {
		return nil, definition.Definition{}, fmt.Errorf("packaged %d of %d executables", len(executables), len(pkgs))
	}
	launchables := make([]launchable, len(pkgs))
	for i := range pkgs {
		launchables[i] = launchable{Exe: executables[i], Pkg: pkgs[i]}
	}
	return launchables, def, nil
}

func recordExperiment(ctx context.Context, cli CLI, deps Dependencies, def definition.Definition, launchables []launchable, out io.Writer) error {
	recorder := deps.Storage.Experiments
	if recorder == nil {
		return fmt.Errorf("experiment storage is not configured")
	}
	if err := recorder.EnsureTable(ctx); err != nil {
		return err
	}
	experiment, err := recorder.CreateExperiment(ctx, def.Title)
	if err != nil {
		return err
	}
	for _, l := range launchables {
		unit := storage.WorkUnit{
			ExperimentID: experiment.ID,
			Name:         l.Exe.Name,
			Kind:         string(l.Exe.Kind),
			Target:       l.Exe.Target,
		}
		if err := recorder.RecordWorkUnit(ctx, unit); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Recorded experiment %s\n", experiment.ID)

	if len(cli.Package.Upload) == 0 {
		return nil
	}
	uploader := deps.Storage.Artifacts
	if uploader == nil {
		return fmt.Errorf("artifact storage is not configured")
	}
	if err := uploader.EnsureBucket(ctx); err != nil {
		return err
	}
	for _, file := range cli.Package.Upload {
		key, err := uploader.Upload(ctx, experiment.ID, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Uploaded %s\n", key)
	}
	return nil
}
