// Where: internal/definition/convert.go
// What: Conversion from parsed definitions to packageable jobs.
// Why: Bridge the declarative file format to typed executable specs.
package definition

import (
	"fmt"

	"github.com/GeoffNN/xmanager/internal/executable"
	"github.com/GeoffNN/xmanager/internal/executors"
	"github.com/GeoffNN/xmanager/internal/job"
)

// Executable kinds accepted in definition files.
const (
	KindSourceDirectory   = "source_directory"
	KindPrebuiltImage     = "prebuilt_image"
	KindPrebuiltBinary    = "prebuilt_binary"
	KindBuildTargetImage  = "build_target_image"
	KindBuildTargetBinary = "build_target_binary"
)

// Build constructs one packageable per entry, building the typed
// executable spec for each declared kind.
func (d Definition) Build() ([]job.Packageable, error) {
	result := make([]job.Packageable, 0, len(d.Packageables))
	for i, entry := range d.Packageables {
		spec, err := buildSpec(entry.Executable)
		if err != nil {
			return nil, fmt.Errorf("packageable %d: %w", i, err)
		}
		executor, err := buildExecutor(entry.Executor, entry.DockerOptions)
		if err != nil {
			return nil, fmt.Errorf("packageable %d: %w", i, err)
		}
		pkg, err := job.NewPackageable(spec, executor)
		if err != nil {
			return nil, fmt.Errorf("packageable %d: %w", i, err)
		}
		pkg.Args = append(pkg.Args, entry.Args...)
		for key, value := range entry.Env {
			pkg.Env[key] = value
		}
		result = append(result, pkg)
	}
	return result, nil
}

func buildSpec(raw ExecutableSpec) (executable.Spec, error) {
	switch raw.Kind {
	case KindSourceDirectory:
		entrypoint, err := buildEntrypoint(raw.Entrypoint)
		if err != nil {
			return nil, err
		}
		return executable.NewSourceDirectory(executable.SourceDirectoryParams{
			Path:               raw.Path,
			Entrypoint:         entrypoint,
			BaseImage:          raw.BaseImage,
			DockerInstructions: raw.DockerInstructions,
		})
	case KindPrebuiltImage:
		return executable.NewPrebuiltImage(raw.Image)
	case KindPrebuiltBinary:
		return executable.NewPrebuiltBinary(raw.Path)
	case KindBuildTargetImage:
		return executable.NewBuildTargetImage(raw.Label)
	case KindBuildTargetBinary:
		return executable.NewBuildTargetBinary(raw.Label)
	default:
		return nil, fmt.Errorf("unknown executable kind %q", raw.Kind)
	}
}

func buildEntrypoint(raw *EntrypointSpec) (executable.Entrypoint, error) {
	if raw == nil {
		return nil, fmt.Errorf("entrypoint is required for source directories")
	}
	if raw.Module != "" && len(raw.Commands) > 0 {
		return nil, fmt.Errorf("entrypoint declares both module and commands")
	}
	if raw.Module != "" {
		return executable.ModuleName{Module: raw.Module}, nil
	}
	if len(raw.Commands) > 0 {
		return executable.NewCommandList(raw.Commands), nil
	}
	return nil, fmt.Errorf("entrypoint declares neither module nor commands")
}

func buildExecutor(name string, opts *DockerOptionsSpec) (job.ExecutorSpec, error) {
	switch name {
	case "", "local":
		spec := executors.LocalSpec{}
		if opts != nil {
			spec.Options = executors.DockerOptions{
				Mounts: opts.Mounts,
				Ports:  opts.Ports,
			}
		}
		return spec, nil
	default:
		return nil, fmt.Errorf("unknown executor %q", name)
	}
}
