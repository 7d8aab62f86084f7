// Where: internal/definition/parser_test.go
// What: Tests for experiment definition parsing and conversion.
// Why: Keep the file format and spec construction honest.
package definition

import (
	"strings"
	"testing"

	"github.com/GeoffNN/xmanager/internal/executable"
	"github.com/GeoffNN/xmanager/internal/executors"
)

const validDefinition = `
title: cifar10 sweep
packageables:
  - executable:
      kind: source_directory
      path: .
      base_image: python:3.11-slim
      entrypoint:
        module: cifar10.train
    executor: local
    args: ["--seed=1"]
    env:
      WANDB_MODE: offline
  - executable:
      kind: prebuilt_image
      image: tensorflow/tensorflow:latest
`

func TestParseValidDefinition(t *testing.T) {
	def, err := Parse([]byte(validDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if def.Title != "cifar10 sweep" {
		t.Errorf("Title = %q, want %q", def.Title, "cifar10 sweep")
	}
	if len(def.Packageables) != 2 {
		t.Fatalf("len(Packageables) = %d, want 2", len(def.Packageables))
	}
	if got := def.Packageables[0].Executable.Kind; got != KindSourceDirectory {
		t.Errorf("Kind = %q, want %q", got, KindSourceDirectory)
	}
	if got := def.Packageables[0].Env["WANDB_MODE"]; got != "offline" {
		t.Errorf("Env[WANDB_MODE] = %q, want %q", got, "offline")
	}
}

func TestParseRejectsMissingTitle(t *testing.T) {
	content := `
packageables:
  - executable:
      kind: prebuilt_image
      image: alpine
`
	if _, err := Parse([]byte(content)); err == nil {
		t.Fatal("Parse() error = nil, want schema violation")
	}
}

func TestParseRejectsUnknownKind(t *testing.T) {
	content := `
title: bad
packageables:
  - executable:
      kind: mystery
`
	if _, err := Parse([]byte(content)); err == nil {
		t.Fatal("Parse() error = nil, want schema violation")
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	content := `
title: bad
packageables:
  - executable:
      kind: prebuilt_image
      image: alpine
    replicas: 3
`
	if _, err := Parse([]byte(content)); err == nil {
		t.Fatal("Parse() error = nil, want schema violation")
	}
}

func TestDefinitionBuild(t *testing.T) {
	def, err := Parse([]byte(validDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	pkgs, err := def.Build()
	if err != nil {
		t.Fatalf("Packageables() error = %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2", len(pkgs))
	}

	src, ok := pkgs[0].Spec.(executable.SourceDirectory)
	if !ok {
		t.Fatalf("pkgs[0].Spec is %T, want SourceDirectory", pkgs[0].Spec)
	}
	if src.BaseImage() != "python:3.11-slim" {
		t.Errorf("BaseImage() = %q", src.BaseImage())
	}
	module, ok := src.Entrypoint().(executable.ModuleName)
	if !ok {
		t.Fatalf("Entrypoint() is %T, want ModuleName", src.Entrypoint())
	}
	if module.Module != "cifar10.train" {
		t.Errorf("Module = %q", module.Module)
	}
	if _, ok := pkgs[0].Executor.(executors.LocalSpec); !ok {
		t.Errorf("Executor is %T, want LocalSpec", pkgs[0].Executor)
	}
	if len(pkgs[0].Args) != 1 || pkgs[0].Args[0] != "--seed=1" {
		t.Errorf("Args = %v", pkgs[0].Args)
	}

	img, ok := pkgs[1].Spec.(executable.PrebuiltImage)
	if !ok {
		t.Fatalf("pkgs[1].Spec is %T, want PrebuiltImage", pkgs[1].Spec)
	}
	if img.Name() != "tensorflow_latest" {
		t.Errorf("Name() = %q", img.Name())
	}
}

func TestDefinitionBuildDockerOptions(t *testing.T) {
	content := `
title: tensorboard
packageables:
  - executable:
      kind: prebuilt_image
      image: tensorflow/tensorflow:latest
    docker_options:
      mounts:
        /tmp/logs: /logs
      ports:
        6006: 6006
`
	def, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	pkgs, err := def.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	local, ok := pkgs[0].Executor.(executors.LocalSpec)
	if !ok {
		t.Fatalf("Executor is %T, want LocalSpec", pkgs[0].Executor)
	}
	if local.Options.Mounts["/tmp/logs"] != "/logs" {
		t.Errorf("Mounts = %v", local.Options.Mounts)
	}
	if local.Options.Ports[6006] != 6006 {
		t.Errorf("Ports = %v", local.Options.Ports)
	}
}

func TestDefinitionRejectsEntrypointConflict(t *testing.T) {
	content := `
title: conflict
packageables:
  - executable:
      kind: source_directory
      entrypoint:
        module: train
        commands: ["./run.sh"]
`
	def, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := def.Build(); err == nil {
		t.Fatal("Build() error = nil, want entrypoint conflict")
	} else if !strings.Contains(err.Error(), "both module and commands") {
		t.Errorf("error = %v, want entrypoint conflict", err)
	}
}
