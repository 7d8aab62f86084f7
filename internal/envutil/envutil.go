// Where: internal/envutil/envutil.go
// What: Helper functions for environment variable handling.
// Why: Centralize the host-level variable naming convention.
package envutil

import (
	"os"
	"strings"

	"github.com/GeoffNN/xmanager/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining ENV_PREFIX with the given suffix.
// Example: HostEnvKey("CONFIG_PATH") returns "XM_CONFIG_PATH".
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv("ENV_PREFIX"))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable.
func GetHostEnv(suffix string) string {
	return os.Getenv(HostEnvKey(suffix))
}
