// Package enhance wraps the DeepFilterNet noise-suppression tool as the
// pipeline's neural enhancement capability.
//
// The deep-filter binary loads its model on every invocation; the Handle is
// still initialized exactly once per session so a missing or broken install
// is a startup failure rather than a surprise on the first batch.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ErrNotFound is returned by Init when the deep-filter binary is not on PATH.
var ErrNotFound = errors.New("deep-filter not found on PATH")

// Handle is the process-wide enhancement capability. It is read-only after
// Init and safe to share across sequential stage invocations.
type Handle struct {
	bin     string
	verbose bool
}

// Init locates and verifies the deep-filter binary. Called at most once per
// session, and only when enhancement is enabled.
func Init(ctx context.Context, verbose bool) (*Handle, error) {
	bin, err := exec.LookPath("deep-filter")
	if err != nil {
		return nil, ErrNotFound
	}

	// A version probe catches broken installs (missing model weights,
	// incompatible dynamic libraries) before the first batch runs.
	cmd := exec.CommandContext(ctx, bin, "--version")
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("deep-filter version check failed: %w (%s)", err, firstLine(out))
	}

	return &Handle{bin: bin, verbose: verbose}, nil
}

// Enhance runs noise suppression on src and writes the result into dstDir
// under the source basename. Returns the produced artifact path.
func (h *Handle) Enhance(ctx context.Context, src, dstDir string) (string, error) {
	cmd := exec.CommandContext(ctx, h.bin, "-o", dstDir, src)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("deep-filter: %w (%s)", err, firstLine(out))
	}
	return filepath.Join(dstDir, filepath.Base(src)), nil
}

func firstLine(out []byte) string {
	for i, b := range out {
		if b == '\n' {
			return string(out[:i])
		}
	}
	return string(out)
}
