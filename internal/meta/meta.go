// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep project identity in one place.
package meta

const (
	// AppName is the CLI binary name.
	AppName = "xm"

	// EnvPrefix prefixes host-level environment variables.
	EnvPrefix = "XM"

	// LabelPrefix namespaces Docker labels applied to job containers.
	LabelPrefix = "com.xmanager"

	// HomeDir is the per-user directory holding global configuration.
	HomeDir = ".xmanager"
)
