// Where: internal/pathutil/pathutil.go
// What: Path normalization for executable specs.
// Why: Resolve launcher-relative paths to a canonical absolute form.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Normalize resolves a path to its absolute canonical form. Relative paths,
// including "." and "..", are resolved against the current working directory.
// The result is stable: normalizing an already normalized path returns it
// unchanged.
func Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path must not be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
