// Where: internal/executable/prebuilt.go
// What: Specs for already-built images and binaries.
// Why: Reference existing artifacts without validating or building them.
package executable

import "fmt"

// PrebuiltImage references an already-built container image by local tag
// or remote registry coordinate. The coordinate is accepted without
// validation; a malformed or missing image is rejected by the consumer
// that resolves it.
type PrebuiltImage struct {
	imagePath string
}

// NewPrebuiltImage builds a PrebuiltImage spec.
func NewPrebuiltImage(imagePath string) (PrebuiltImage, error) {
	if imagePath == "" || DeriveName(imagePath) == "" {
		return PrebuiltImage{}, fmt.Errorf("%w: image path %q derives an empty name", ErrInvalidSpec, imagePath)
	}
	return PrebuiltImage{imagePath: imagePath}, nil
}

// Name returns the identifier derived from the image coordinate.
func (s PrebuiltImage) Name() string {
	return DeriveName(s.imagePath)
}

// ImagePath returns the image tag or registry coordinate.
func (s PrebuiltImage) ImagePath() string {
	return s.imagePath
}

// PrebuiltBinary references an existing executable program, optionally
// with backend-specific dependencies.
type PrebuiltBinary struct {
	path         string
	dependencies []BinaryDependency
}

// NewPrebuiltBinary builds a PrebuiltBinary spec. The dependency sequence
// is copied so that every instance owns its own list.
func NewPrebuiltBinary(path string, deps ...BinaryDependency) (PrebuiltBinary, error) {
	if path == "" || DeriveName(path) == "" {
		return PrebuiltBinary{}, fmt.Errorf("%w: binary path %q derives an empty name", ErrInvalidSpec, path)
	}
	return PrebuiltBinary{path: path, dependencies: copyDependencies(deps)}, nil
}

// Name returns the identifier derived from the binary path.
func (s PrebuiltBinary) Name() string {
	return DeriveName(s.path)
}

// Path returns the path to the executable.
func (s PrebuiltBinary) Path() string {
	return s.path
}

// Dependencies returns a copy of the attached binary dependencies.
func (s PrebuiltBinary) Dependencies() []BinaryDependency {
	return copyDependencies(s.dependencies)
}
