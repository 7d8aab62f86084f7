// Where: internal/executors/local.go
// What: Executor specs for local execution.
// Why: Describe the runtime environment jobs are packaged for.
package executors

// DockerOptions tunes how a local container is run.
type DockerOptions struct {
	// Mounts maps host paths to container paths.
	Mounts map[string]string
	// Ports maps host ports to container ports.
	Ports map[int]int
}

// LocalSpec marks a job for execution on the local Docker daemon.
type LocalSpec struct {
	Options DockerOptions
}

func (LocalSpec) IsExecutorSpec() {}
