package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CollisionResolver tracks deliverable paths claimed by source files within
// one batch and resolves duplicates by appending " - dupN" suffixes. Two
// sources with the same basename from different directories would otherwise
// silently overwrite each other in the output directory. Intended for
// sequential use by a single batch run.
type CollisionResolver struct {
	owners   map[string]string // output path → source path that owns it
	counters map[string]int    // base output path → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output path for source. If requested is unclaimed
// (or already owned by source), it is returned as-is; otherwise a " - dupN"
// variant is generated.
func (cr *CollisionResolver) Resolve(source, requested string) string {
	owner, exists := cr.owners[requested]
	if !exists || owner == source {
		cr.owners[requested] = source
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == source {
			cr.counters[requested] = counter + 1
			cr.owners[candidate] = source
			return candidate
		}
		counter++
	}
}
