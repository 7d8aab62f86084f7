// Where: internal/imagebuild/render.go
// What: Render Dockerfile and entrypoint script for source directories.
// Why: Turn a SourceDirectory spec into concrete build inputs.
package imagebuild

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/GeoffNN/xmanager/internal/executable"
)

// DefaultBaseImage is used when a spec names no base image.
const DefaultBaseImage = "gcr.io/deeplearning-platform-release/base-cu110"

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	templateOnce       sync.Once
	templateErr        error
	dockerfileTemplate *template.Template
	entrypointTemplate *template.Template
)

func loadTemplates() error {
	templateOnce.Do(func() {
		tmpl, err := template.New("dockerfile.tmpl").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/dockerfile.tmpl")
		if err != nil {
			templateErr = err
			return
		}
		dockerfileTemplate = tmpl
		tmpl, err = template.New("entrypoint.sh.tmpl").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/entrypoint.sh.tmpl")
		if err != nil {
			templateErr = err
			return
		}
		entrypointTemplate = tmpl
	})
	return templateErr
}

type dockerfileData struct {
	BaseImage      string
	Instructions   []string
	EntrypointArgs []string
}

type entrypointData struct {
	Commands []string
}

// RenderDockerfile produces the Dockerfile for a source directory. Custom
// docker instructions are used verbatim when present; otherwise the
// default steps copy the project and install its requirements. Env vars
// are appended as ENV lines in sorted order, and args are baked into the
// ENTRYPOINT.
func RenderDockerfile(spec executable.SourceDirectory, args []string, env map[string]string, defaultBase string) (string, error) {
	if err := loadTemplates(); err != nil {
		return "", err
	}
	base := spec.BaseImage()
	if base == "" {
		base = defaultBase
	}
	if base == "" {
		base = DefaultBaseImage
	}

	instructions := spec.DockerInstructions()
	if instructions == nil {
		instructions = defaultSteps(filepath.Base(spec.Path()))
	}
	for _, key := range sortedKeys(env) {
		instructions = append(instructions, fmt.Sprintf("ENV %s=%q", key, env[key]))
	}

	entrypointArgs := []string{fmt.Sprintf("%q", "./entrypoint.sh")}
	for _, arg := range args {
		entrypointArgs = append(entrypointArgs, fmt.Sprintf("%q", arg))
	}

	var buf bytes.Buffer
	err := dockerfileTemplate.Execute(&buf, dockerfileData{
		BaseImage:      base,
		Instructions:   instructions,
		EntrypointArgs: entrypointArgs,
	})
	if err != nil {
		return "", fmt.Errorf("render dockerfile: %w", err)
	}
	return buf.String(), nil
}

// RenderEntrypointScript produces the bash script that enters the project.
// Module entrypoints run as `python -m`; command lists run in order with
// the container arguments appended to the last command.
func RenderEntrypointScript(spec executable.SourceDirectory) (string, error) {
	if err := loadTemplates(); err != nil {
		return "", err
	}
	var commands []string
	switch ep := spec.Entrypoint().(type) {
	case executable.ModuleName:
		commands = []string{fmt.Sprintf("python -m %s $@", ep.Module)}
	case executable.CommandList:
		commands = ep.Commands()
		if len(commands) == 0 {
			return "", fmt.Errorf("command list entrypoint is empty")
		}
		commands[len(commands)-1] += " $@"
	default:
		return "", fmt.Errorf("unsupported entrypoint type %T", spec.Entrypoint())
	}

	var buf bytes.Buffer
	if err := entrypointTemplate.Execute(&buf, entrypointData{Commands: commands}); err != nil {
		return "", fmt.Errorf("render entrypoint: %w", err)
	}
	return buf.String(), nil
}

// defaultSteps installs requirements before copying the project so Docker
// can reuse cached layers across source-only changes.
func defaultSteps(directory string) []string {
	return []string{
		// Without LANG some tools hit decode errors on UTF-8 output.
		"ENV LANG=C.UTF-8",
		"RUN apt-get update && apt-get install -y git",
		"RUN python -m pip install --upgrade pip",
		fmt.Sprintf("COPY %s/requirements.txt %s/requirements.txt", directory, directory),
		fmt.Sprintf("RUN python -m pip install -r %s/requirements.txt", directory),
		fmt.Sprintf("COPY %s/ %s", directory, directory),
		fmt.Sprintf("WORKDIR %s", directory),
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
