// Package naming derives artifact and deliverable filenames from source
// paths and resolves in-batch output collisions.
package naming

import (
	"path/filepath"
	"strings"
)

// Stem returns the basename of path with its extension stripped.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WithExt returns the basename of path with its extension replaced by ext
// (ext includes the leading dot). Output deliverables and per-stage artifacts
// are always named from the job's original basename this way, so jobs with
// distinct source names never collide.
func WithExt(path, ext string) string {
	return Stem(path) + ext
}
