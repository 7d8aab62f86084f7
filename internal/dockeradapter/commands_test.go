// Where: internal/dockeradapter/commands_test.go
// What: Tests for docker subprocess helpers.
// Why: Keep CLI invocations stable without a Docker daemon.
package dockeradapter

import (
	"context"
	"reflect"
	"testing"
)

type fakeRunner struct {
	dir    string
	name   string
	args   []string
	output []byte
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.dir = dir
	f.name = name
	f.args = args
	return nil
}

func (f *fakeRunner) RunQuiet(ctx context.Context, dir, name string, args ...string) error {
	return f.Run(ctx, dir, name, args...)
}

func (f *fakeRunner) RunOutput(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.dir = dir
	f.name = name
	f.args = args
	return f.output, nil
}

func TestBuildImage(t *testing.T) {
	runner := &fakeRunner{}
	cli := NewCLI(runner)
	if err := cli.BuildImage(context.Background(), "/tmp/ctx", "cifar10:latest"); err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if runner.dir != "/tmp/ctx" || runner.name != "docker" {
		t.Errorf("command = %s in %s", runner.name, runner.dir)
	}
	want := []string{"build", "-t", "cifar10:latest", "."}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

func TestPullImageDefaultsTag(t *testing.T) {
	runner := &fakeRunner{}
	cli := NewCLI(runner)
	if err := cli.PullImage(context.Background(), "gcr.io/project/image"); err != nil {
		t.Fatalf("PullImage: %v", err)
	}
	want := []string{"pull", "gcr.io/project/image:latest"}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

func TestLoadImageParsesOutput(t *testing.T) {
	runner := &fakeRunner{output: []byte("Loaded image: bazel/image:tar\n")}
	cli := NewCLI(runner)
	ref, err := cli.LoadImage(context.Background(), "/tmp/image.tar")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if ref != "bazel/image:tar" {
		t.Errorf("ref = %s", ref)
	}

	runner.output = []byte("Loaded image ID: sha256:abcdef\n")
	ref, err = cli.LoadImage(context.Background(), "/tmp/image.tar")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if ref != "sha256:abcdef" {
		t.Errorf("ref = %s", ref)
	}

	runner.output = []byte("nothing useful")
	if _, err := cli.LoadImage(context.Background(), "/tmp/image.tar"); err == nil {
		t.Error("LoadImage should fail without a reference in output")
	}
}

func TestRunContainer(t *testing.T) {
	runner := &fakeRunner{}
	cli := NewCLI(runner)
	env := map[string]string{"B": "2", "A": "1"}
	err := cli.RunContainer(context.Background(), "cifar10:latest", "cifar10", []string{"--epochs", "3"}, env, RunOptions{})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	want := []string{
		"run", "--detach", "--rm",
		"--label", JobLabel + "=cifar10",
		"-e", "A=1",
		"-e", "B=2",
		"cifar10:latest",
		"--epochs", "3",
	}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

func TestRunContainerWithOptions(t *testing.T) {
	runner := &fakeRunner{}
	cli := NewCLI(runner)
	opts := RunOptions{
		Mounts: map[string]string{"/data": "/workdir/data"},
		Ports:  map[int]int{6006: 6006, 8080: 80},
	}
	err := cli.RunContainer(context.Background(), "cifar10:latest", "cifar10", nil, nil, opts)
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	want := []string{
		"run", "--detach", "--rm",
		"--label", JobLabel + "=cifar10",
		"-v", "/data:/workdir/data",
		"-p", "6006:6006",
		"-p", "8080:80",
		"cifar10:latest",
	}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}
