// Where: internal/executable/source_directory.go
// What: Spec for a project directory built into a container image.
// Why: Capture the directory, its entrypoint, and build customization.
package executable

import (
	"fmt"

	"github.com/GeoffNN/xmanager/internal/pathutil"
)

// SourceDirectoryParams collects the inputs for NewSourceDirectory.
// Entrypoint is required. Path defaults to the current directory.
// BaseImage and DockerInstructions are optional and independent.
type SourceDirectoryParams struct {
	Path               string
	Entrypoint         Entrypoint
	BaseImage          string
	DockerInstructions []string
}

// SourceDirectory describes a directory containing source code and how to
// turn it into an image. The path is normalized to an absolute canonical
// form at construction time.
//
// When DockerInstructions are supplied, the caller is responsible for
// including the instructions that copy the directory contents into the
// image; nothing is injected automatically.
type SourceDirectory struct {
	path               string
	entrypoint         Entrypoint
	baseImage          string
	dockerInstructions []string
}

// NewSourceDirectory builds a SourceDirectory spec. The path is resolved
// through pathutil.Normalize, which may consult the working directory but
// performs no other I/O.
func NewSourceDirectory(p SourceDirectoryParams) (SourceDirectory, error) {
	if p.Entrypoint == nil {
		return SourceDirectory{}, fmt.Errorf("%w: entrypoint is required", ErrInvalidSpec)
	}
	path := p.Path
	if path == "" {
		path = "."
	}
	normalized, err := pathutil.Normalize(path)
	if err != nil {
		return SourceDirectory{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if DeriveName(normalized) == "" {
		return SourceDirectory{}, fmt.Errorf("%w: path %q derives an empty name", ErrInvalidSpec, path)
	}
	var instructions []string
	if p.DockerInstructions != nil {
		instructions = make([]string, len(p.DockerInstructions))
		copy(instructions, p.DockerInstructions)
	}
	return SourceDirectory{
		path:               normalized,
		entrypoint:         p.Entrypoint,
		baseImage:          p.BaseImage,
		dockerInstructions: instructions,
	}, nil
}

// Name returns the identifier derived from the normalized path.
func (s SourceDirectory) Name() string {
	return DeriveName(s.path)
}

// Path returns the normalized absolute project path.
func (s SourceDirectory) Path() string {
	return s.path
}

// Entrypoint returns how the project is entered.
func (s SourceDirectory) Entrypoint() Entrypoint {
	return s.entrypoint
}

// BaseImage returns the first build-stage base image, or "" when unset.
func (s SourceDirectory) BaseImage() string {
	return s.baseImage
}

// DockerInstructions returns a copy of the raw build instructions, or nil
// when the default build steps apply.
func (s SourceDirectory) DockerInstructions() []string {
	if s.dockerInstructions == nil {
		return nil
	}
	out := make([]string, len(s.dockerInstructions))
	copy(out, s.dockerInstructions)
	return out
}
