// Where: internal/job/job.go
// What: Job-related data types shared by packaging and execution.
// Why: Describe what to run and where, independent of any backend.
package job

import (
	"fmt"

	"github.com/GeoffNN/xmanager/internal/executable"
)

// ExecutorSpec describes the location of a runtime environment. Backend
// packages provide concrete kinds; routing happens by type switch.
type ExecutorSpec interface {
	// IsExecutorSpec marks a type as an executor spec.
	IsExecutorSpec()
}

// ExecutableKind distinguishes how a packaged executable is launched.
type ExecutableKind string

const (
	// KindImage marks an executable backed by a container image.
	KindImage ExecutableKind = "image"
	// KindBinary marks an executable backed by a program on disk.
	KindBinary ExecutableKind = "binary"
)

// Executable is the result of packaging an executable spec: the final
// location of the built artifact plus the name used for derived entities.
type Executable struct {
	Name   string
	Kind   ExecutableKind
	Target string
}

// Packageable describes what to build and its static parameters. Args and
// env vars recorded here are baked into the packaged artifact.
type Packageable struct {
	Spec     executable.Spec
	Executor ExecutorSpec
	Args     []string
	Env      map[string]string
}

// NewPackageable pairs an executable spec with an executor spec. Args and
// env maps are allocated per instance so callers can extend them freely.
func NewPackageable(spec executable.Spec, executor ExecutorSpec) (Packageable, error) {
	if spec == nil {
		return Packageable{}, fmt.Errorf("executable spec is required")
	}
	if executor == nil {
		return Packageable{}, fmt.Errorf("executor spec is required")
	}
	return Packageable{
		Spec:     spec,
		Executor: executor,
		Args:     []string{},
		Env:      map[string]string{},
	}, nil
}

// Job describes a unit of computation to be run: a packaged executable,
// the executor spec it was packaged for, and per-run parameters. Name
// defaults to the executable's derived name.
type Job struct {
	Executable Executable
	Executor   ExecutorSpec
	Name       string
	Args       []string
	Env        map[string]string
}

// DisplayName returns the job name, falling back to the executable name.
func (j Job) DisplayName() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Executable.Name
}

// JobGroup is a set of named jobs launched together. Names must be unique
// within the group.
type JobGroup struct {
	Jobs map[string]Job
}

// NewJobGroup copies the given jobs into a group.
func NewJobGroup(jobs map[string]Job) JobGroup {
	out := make(map[string]Job, len(jobs))
	for name, job := range jobs {
		out[name] = job
	}
	return JobGroup{Jobs: out}
}
