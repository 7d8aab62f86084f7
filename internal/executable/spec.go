// Where: internal/executable/spec.go
// What: The executable-spec capability and its shared contracts.
// Why: Let builders select a packaging strategy from an opaque spec value.
package executable

import "errors"

// ErrInvalidSpec is returned by constructors when a required field is
// missing or an identifying string derives an empty name. It is the only
// error condition at this layer; field values are otherwise accepted
// without semantic validation.
var ErrInvalidSpec = errors.New("invalid executable spec")

// Spec describes how a runnable unit of code is obtained. A spec is
// immutable after construction and carries a derived identifier used for
// naming downstream entities such as images and containers.
//
// The variant set is closed: SourceDirectory, PrebuiltImage,
// PrebuiltBinary, BuildTargetImage, and BuildTargetBinary. Builders
// type-switch over these to choose a build strategy.
type Spec interface {
	// Name returns the identifier derived from the spec's path or label.
	Name() string
}

// BinaryDependency is an additional resource attached to PrebuiltBinary or
// BuildTargetBinary. Backends define concrete kinds; the spec family only
// stores and exposes them.
type BinaryDependency interface {
	// IsBinaryDependency marks a type as a binary dependency.
	IsBinaryDependency()
}

func copyDependencies(deps []BinaryDependency) []BinaryDependency {
	out := make([]BinaryDependency, len(deps))
	copy(out, deps)
	return out
}
