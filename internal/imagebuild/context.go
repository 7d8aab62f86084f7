// Where: internal/imagebuild/context.go
// What: Build-context directory preparation.
// Why: Stage project, Dockerfile, and entrypoint for docker build.
package imagebuild

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GeoffNN/xmanager/internal/fileops"
)

// PrepareContext stages a docker build context in a fresh temporary
// directory: the project tree under its own basename, the Dockerfile, and
// an executable entrypoint.sh. The caller removes the directory when the
// build is done.
func PrepareContext(projectPath, dockerfile, entrypointScript string) (string, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %s is not a directory", projectPath)
	}

	dir, err := os.MkdirTemp("", "xm-build-")
	if err != nil {
		return "", err
	}
	arcname := filepath.Base(projectPath)
	if err := fileops.CopyDir(projectPath, filepath.Join(dir, arcname)); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("copy project: %w", err)
	}
	if err := fileops.WriteFile(filepath.Join(dir, "Dockerfile"), dockerfile, 0o644); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	if err := fileops.WriteFile(filepath.Join(dir, "entrypoint.sh"), entrypointScript, 0o755); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}
