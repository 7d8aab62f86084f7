// Where: internal/version/version.go
// What: Build version reporting.
// Why: Surface the VCS revision a binary was built from.
package version

import (
	"runtime/debug"

	"github.com/GeoffNN/xmanager/internal/meta"
)

// String returns "<app> <revision>" for the running binary. Revisions are
// shortened to 7 characters and suffixed with "(dirty)" when the tree had
// local modifications. Binaries built outside version control report "dev".
func String() string {
	return meta.AppName + " " + revision()
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	rev := ""
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if rev == "" {
		return "dev"
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if modified {
		rev += " (dirty)"
	}
	return rev
}
