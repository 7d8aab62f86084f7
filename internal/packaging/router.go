// Where: internal/packaging/router.go
// What: Packaging router dispatching executable specs to build backends.
// Why: One entry point turns every spec kind into a runnable artifact.
package packaging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GeoffNN/xmanager/internal/executable"
	"github.com/GeoffNN/xmanager/internal/fileops"
	"github.com/GeoffNN/xmanager/internal/imagebuild"
	"github.com/GeoffNN/xmanager/internal/job"
)

// Docker covers the docker CLI operations packaging needs.
type Docker interface {
	BuildImage(ctx context.Context, contextDir, tag string) error
	PullImage(ctx context.Context, ref string) error
	LoadImage(ctx context.Context, tarPath string) (string, error)
}

// ImageChecker reports whether an image is already present locally.
type ImageChecker interface {
	Has(ctx context.Context, ref string) (bool, error)
}

// Bazel builds labels into output files.
type Bazel interface {
	Build(ctx context.Context, label string) ([]string, error)
}

// Router packages executable specs using the configured backends.
type Router struct {
	Docker    Docker
	Images    ImageChecker
	Bazel     Bazel
	BaseImage string
	Registry  string
	Out       io.Writer
}

// Package turns one packageable into an executable artifact. Each spec
// kind uses its own strategy.
func (r Router) Package(ctx context.Context, pkg job.Packageable) (job.Executable, error) {
	switch spec := pkg.Spec.(type) {
	case executable.SourceDirectory:
		return r.packageSourceDirectory(ctx, spec, pkg)
	case executable.PrebuiltImage:
		return r.packagePrebuiltImage(ctx, spec)
	case executable.PrebuiltBinary:
		return r.packagePrebuiltBinary(spec)
	case executable.BuildTargetImage:
		return r.packageBuildTargetImage(ctx, spec)
	case executable.BuildTargetBinary:
		return r.packageBuildTargetBinary(ctx, spec)
	default:
		return job.Executable{}, fmt.Errorf("no packaging strategy for %T", pkg.Spec)
	}
}

// PackageAll packages every packageable in order, stopping at the first
// failure.
func (r Router) PackageAll(ctx context.Context, pkgs []job.Packageable) ([]job.Executable, error) {
	result := make([]job.Executable, 0, len(pkgs))
	for _, pkg := range pkgs {
		exe, err := r.Package(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Spec.Name(), err)
		}
		result = append(result, exe)
	}
	return result, nil
}

func (r Router) packageSourceDirectory(ctx context.Context, spec executable.SourceDirectory, pkg job.Packageable) (job.Executable, error) {
	if r.Docker == nil {
		return job.Executable{}, fmt.Errorf("docker backend is required")
	}
	dockerfile, err := imagebuild.RenderDockerfile(spec, pkg.Args, pkg.Env, r.BaseImage)
	if err != nil {
		return job.Executable{}, err
	}
	script, err := imagebuild.RenderEntrypointScript(spec)
	if err != nil {
		return job.Executable{}, err
	}
	contextDir, err := imagebuild.PrepareContext(spec.Path(), dockerfile, script)
	if err != nil {
		return job.Executable{}, err
	}
	defer os.RemoveAll(contextDir)

	tag := r.imageTag(spec.Name())
	r.logf("Building %s from %s", tag, spec.Path())
	if err := r.Docker.BuildImage(ctx, contextDir, tag); err != nil {
		return job.Executable{}, fmt.Errorf("docker build %s: %w", tag, err)
	}
	return job.Executable{Name: spec.Name(), Kind: job.KindImage, Target: tag}, nil
}

func (r Router) packagePrebuiltImage(ctx context.Context, spec executable.PrebuiltImage) (job.Executable, error) {
	ref := spec.ImagePath()
	if r.Images != nil {
		present, err := r.Images.Has(ctx, ref)
		if err != nil {
			return job.Executable{}, fmt.Errorf("inspect %s: %w", ref, err)
		}
		if present {
			return job.Executable{Name: spec.Name(), Kind: job.KindImage, Target: ref}, nil
		}
	}
	if r.Docker == nil {
		return job.Executable{}, fmt.Errorf("docker backend is required")
	}
	r.logf("Pulling %s", ref)
	if err := r.Docker.PullImage(ctx, ref); err != nil {
		return job.Executable{}, fmt.Errorf("docker pull %s: %w", ref, err)
	}
	return job.Executable{Name: spec.Name(), Kind: job.KindImage, Target: ref}, nil
}

func (r Router) packagePrebuiltBinary(spec executable.PrebuiltBinary) (job.Executable, error) {
	if !fileops.FileExists(spec.Path()) {
		return job.Executable{}, fmt.Errorf("binary %s does not exist", spec.Path())
	}
	return job.Executable{Name: spec.Name(), Kind: job.KindBinary, Target: spec.Path()}, nil
}

func (r Router) packageBuildTargetImage(ctx context.Context, spec executable.BuildTargetImage) (job.Executable, error) {
	if r.Bazel == nil {
		return job.Executable{}, fmt.Errorf("bazel backend is required")
	}
	if r.Docker == nil {
		return job.Executable{}, fmt.Errorf("docker backend is required")
	}
	outputs, err := r.Bazel.Build(ctx, spec.Label())
	if err != nil {
		return job.Executable{}, err
	}
	tarPath := ""
	for _, output := range outputs {
		if strings.HasSuffix(output, ".tar") {
			tarPath = output
			break
		}
	}
	if tarPath == "" {
		return job.Executable{}, fmt.Errorf("%s produced no image archive", spec.Label())
	}
	r.logf("Loading %s", tarPath)
	ref, err := r.Docker.LoadImage(ctx, tarPath)
	if err != nil {
		return job.Executable{}, err
	}
	return job.Executable{Name: spec.Name(), Kind: job.KindImage, Target: ref}, nil
}

func (r Router) packageBuildTargetBinary(ctx context.Context, spec executable.BuildTargetBinary) (job.Executable, error) {
	if r.Bazel == nil {
		return job.Executable{}, fmt.Errorf("bazel backend is required")
	}
	outputs, err := r.Bazel.Build(ctx, spec.Label())
	if err != nil {
		return job.Executable{}, err
	}
	if len(outputs) == 0 {
		return job.Executable{}, fmt.Errorf("%s produced no outputs", spec.Label())
	}
	return job.Executable{Name: spec.Name(), Kind: job.KindBinary, Target: outputs[0]}, nil
}

func (r Router) imageTag(name string) string {
	tag := name + ":latest"
	if r.Registry != "" {
		tag = r.Registry + "/" + tag
	}
	return tag
}

func (r Router) logf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, format+"\n", args...)
}
