// Where: internal/app/jobs.go
// What: Job container commands.
// Why: Inspect and stop containers started for packaged jobs.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/GeoffNN/xmanager/internal/dockeradapter"
)

// ContainerManager queries and stops job containers.
type ContainerManager interface {
	List(ctx context.Context, job string) ([]dockeradapter.ContainerInfo, error)
	Stop(ctx context.Context, job string) error
}

// JobDeps bundles the container management backend.
type JobDeps struct {
	Manager ContainerManager
}

func runPs(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Jobs.Manager == nil {
		return exitWithError(out, fmt.Errorf("container manager is required"))
	}
	containers, err := deps.Jobs.Manager.List(context.Background(), cli.Ps.Job)
	if err != nil {
		return exitWithError(out, err)
	}
	if len(containers) == 0 {
		fmt.Fprintf(out, "No containers for job %s\n", cli.Ps.Job)
		return 0
	}
	for _, ctr := range containers {
		fmt.Fprintf(out, "%s\t%s\t%s\n", ctr.Name, ctr.State, ctr.ID)
	}
	return 0
}

func runStop(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Jobs.Manager == nil {
		return exitWithError(out, fmt.Errorf("container manager is required"))
	}
	if err := deps.Jobs.Manager.Stop(context.Background(), cli.Stop.Job); err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprintf(out, "Stopped job %s\n", cli.Stop.Job)
	return 0
}
