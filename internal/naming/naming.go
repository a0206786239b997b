// Package naming derives the output file stem from a well name.
package naming

import (
	"path/filepath"
	"strings"
)

var slugReplacer = strings.NewReplacer("/", "!", " ", "_")

// Sluggify makes token safe to use as a filename stem: '/' becomes '!' and
// ' ' becomes '_'. The two character sets are disjoint, so the order of
// substitution does not matter.
func Sluggify(token string) string {
	return slugReplacer.Replace(token)
}

// FromPath is the fallback identifier used when a file carries no well
// name: the sluggified base name of path, extension included.
func FromPath(path string) string {
	return Sluggify(filepath.Base(path))
}
