// Where: internal/executable/buildtarget.go
// What: Specs for build-system targets producing images and binaries.
// Why: Reference build labels resolved later by the build tool.
package executable

import "fmt"

// BuildTargetImage references a build-system target that produces a
// tar-style image artifact.
type BuildTargetImage struct {
	label string
}

// NewBuildTargetImage builds a BuildTargetImage spec.
func NewBuildTargetImage(label string) (BuildTargetImage, error) {
	if label == "" || DeriveName(label) == "" {
		return BuildTargetImage{}, fmt.Errorf("%w: label %q derives an empty name", ErrInvalidSpec, label)
	}
	return BuildTargetImage{label: label}, nil
}

// Name returns the identifier derived from the label.
func (s BuildTargetImage) Name() string {
	return DeriveName(s.label)
}

// Label returns the build-system label.
func (s BuildTargetImage) Label() string {
	return s.label
}

// BuildTargetBinary references a build-system target that produces a
// self-contained binary, optionally with backend-specific dependencies.
type BuildTargetBinary struct {
	label        string
	dependencies []BinaryDependency
}

// NewBuildTargetBinary builds a BuildTargetBinary spec. The dependency
// sequence is copied so that every instance owns its own list.
func NewBuildTargetBinary(label string, deps ...BinaryDependency) (BuildTargetBinary, error) {
	if label == "" || DeriveName(label) == "" {
		return BuildTargetBinary{}, fmt.Errorf("%w: label %q derives an empty name", ErrInvalidSpec, label)
	}
	return BuildTargetBinary{label: label, dependencies: copyDependencies(deps)}, nil
}

// Name returns the identifier derived from the label.
func (s BuildTargetBinary) Name() string {
	return DeriveName(s.label)
}

// Label returns the build-system label.
func (s BuildTargetBinary) Label() string {
	return s.label
}

// Dependencies returns a copy of the attached binary dependencies.
func (s BuildTargetBinary) Dependencies() []BinaryDependency {
	return copyDependencies(s.dependencies)
}
