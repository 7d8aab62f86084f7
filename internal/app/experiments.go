// Where: internal/app/experiments.go
// What: Experiments command helpers.
// Why: Show what packaging runs have been recorded.
package app

import (
	"context"
	"fmt"
	"io"
)

func runExperiments(_ CLI, deps Dependencies, out io.Writer) int {
	recorder := deps.Storage.Experiments
	if recorder == nil {
		return exitWithError(out, fmt.Errorf("experiment storage is not configured"))
	}
	experiments, err := recorder.ListExperiments(context.Background())
	if err != nil {
		return exitWithError(out, err)
	}
	if len(experiments) == 0 {
		fmt.Fprintln(out, "No experiments recorded")
		return 0
	}
	for _, experiment := range experiments {
		fmt.Fprintf(out, "%s\t%s\t%s\n",
			experiment.ID,
			experiment.CreatedAt.Format("2006-01-02 15:04:05"),
			experiment.Title,
		)
	}
	return 0
}
