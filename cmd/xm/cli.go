// Where: cmd/xm/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"io"
	"os"

	"github.com/GeoffNN/xmanager/internal/app"
	"github.com/GeoffNN/xmanager/internal/bazel"
	"github.com/GeoffNN/xmanager/internal/config"
	"github.com/GeoffNN/xmanager/internal/dockeradapter"
	"github.com/GeoffNN/xmanager/internal/packaging"
	"github.com/GeoffNN/xmanager/internal/runner"
	"github.com/GeoffNN/xmanager/internal/storage"
)

var newDockerClient = dockeradapter.NewClient

// buildDependencies constructs all runtime dependencies required by the
// CLI. It initializes the Docker client, packaging backends, and optional
// experiment storage. Returns the dependencies, a closer for cleanup, and
// any initialization error.
func buildDependencies() (app.Dependencies, io.Closer, error) {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	client, err := newDockerClient()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	execRunner := runner.ExecRunner{}
	dockerCLI := dockeradapter.NewCLI(execRunner)
	daemon := dockeradapter.Daemon{Client: client}

	deps := app.Dependencies{
		Out: os.Stdout,
		Packager: packaging.Router{
			Docker:    dockerCLI,
			Images:    daemon,
			Bazel:     bazel.NewClient(cfg.BazelCommand, "", execRunner),
			BaseImage: cfg.BaseImage,
			Registry:  cfg.Registry,
			Out:       os.Stdout,
		},
		Run: app.RunDeps{
			Launcher: dockerCLI,
			Runner:   execRunner,
		},
		Jobs: app.JobDeps{
			Manager: daemon,
		},
		Storage: buildStorage(cfg.Storage),
	}

	return deps, asCloser(client), nil
}

// buildStorage wires the experiment store when the config enables it.
func buildStorage(cfg config.StorageConfig) app.StorageDeps {
	if !cfg.Enabled() {
		return app.StorageDeps{}
	}

	ctx := context.Background()
	factory := storage.AWSClientFactory{}
	settings := storage.Settings{Region: cfg.Region, Endpoint: cfg.Endpoint}
	deps := app.StorageDeps{}

	if db, err := factory.DynamoDB(ctx, settings); err == nil {
		table := cfg.Table
		if table == "" {
			table = storage.DefaultTable
		}
		deps.Experiments = storage.NewExperimentStore(db, table)
	}
	if s3, err := factory.S3(ctx, settings); err == nil {
		bucket := cfg.Bucket
		if bucket == "" {
			bucket = storage.DefaultBucket
		}
		deps.Artifacts = storage.NewArtifactStore(s3, bucket)
	}
	return deps
}

// asCloser attempts to cast the Docker client to an io.Closer. Returns nil
// if the client does not implement the Closer interface.
func asCloser(client dockeradapter.Client) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
