// Where: internal/job/job_test.go
// What: Tests for job data types.
// Why: Keep packageable defaults per-instance and names predictable.
package job

import (
	"testing"

	"github.com/GeoffNN/xmanager/internal/executable"
)

type stubExecutorSpec struct{}

func (stubExecutorSpec) IsExecutorSpec() {}

func TestNewPackageableDefaults(t *testing.T) {
	spec, err := executable.NewPrebuiltImage("repo/image:v1")
	if err != nil {
		t.Fatalf("NewPrebuiltImage: %v", err)
	}

	first, err := NewPackageable(spec, stubExecutorSpec{})
	if err != nil {
		t.Fatalf("NewPackageable: %v", err)
	}
	second, err := NewPackageable(spec, stubExecutorSpec{})
	if err != nil {
		t.Fatalf("NewPackageable: %v", err)
	}

	first.Env["A"] = "1"
	first.Args = append(first.Args, "--flag")
	if len(second.Env) != 0 || len(second.Args) != 0 {
		t.Error("packageable defaults are shared across instances")
	}
}

func TestNewPackageableRequiredFields(t *testing.T) {
	spec, err := executable.NewPrebuiltImage("repo/image:v1")
	if err != nil {
		t.Fatalf("NewPrebuiltImage: %v", err)
	}
	if _, err := NewPackageable(nil, stubExecutorSpec{}); err == nil {
		t.Error("nil spec should fail")
	}
	if _, err := NewPackageable(spec, nil); err == nil {
		t.Error("nil executor should fail")
	}
}

func TestJobDisplayName(t *testing.T) {
	job := Job{Executable: Executable{Name: "trainer", Kind: KindImage, Target: "trainer:latest"}}
	if job.DisplayName() != "trainer" {
		t.Errorf("DisplayName() = %s", job.DisplayName())
	}
	job.Name = "learner"
	if job.DisplayName() != "learner" {
		t.Errorf("DisplayName() = %s", job.DisplayName())
	}
}

func TestNewJobGroupCopies(t *testing.T) {
	jobs := map[string]Job{"actor": {Name: "actor"}}
	group := NewJobGroup(jobs)
	jobs["learner"] = Job{Name: "learner"}
	if len(group.Jobs) != 1 {
		t.Errorf("group aliases the caller's map: %v", group.Jobs)
	}
}
