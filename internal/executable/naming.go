// Where: internal/executable/naming.go
// What: Identifier derivation from paths and build labels.
// Why: Give every spec variant the same deterministic naming rule.
package executable

import (
	"regexp"
	"strings"
)

var nonWordRuns = regexp.MustCompile(`\W+`)

// DeriveName turns a filesystem path or build-system label into an
// identifier consisting only of [A-Za-z0-9_].
//
// Trailing separators are insignificant: "a/b" and "a/b/" derive the same
// name. For filesystem paths the final path component is used. Labels
// starting with "//" keep their full package path so that
// "//foo/bar:image.tar" becomes "foo_bar_image_tar". In both cases every
// maximal run of non-word characters collapses to a single underscore.
//
// The function is pure and total. An input consisting only of separators
// derives the empty string; spec constructors reject such inputs.
func DeriveName(s string) string {
	trimmed := strings.TrimRight(s, "/")
	if strings.HasPrefix(trimmed, "//") {
		return sanitizeName(strings.TrimLeft(trimmed, "/"))
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return sanitizeName(trimmed)
}

func sanitizeName(s string) string {
	return nonWordRuns.ReplaceAllString(s, "_")
}
