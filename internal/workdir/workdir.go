// Package workdir owns the working directories of a batch run: creation
// before use and guaranteed cleanup afterwards.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/audiomaster/internal/config"
)

// Role identifies a working directory by its retention policy.
type Role string

const (
	// RoleTemp holds format-conversion scratch files. Always discarded at
	// batch end.
	RoleTemp Role = "temp"
	// RoleIntermediate holds post-loudness-normalization artifacts.
	// Discarded at batch end unless the retention flag is set.
	RoleIntermediate Role = "intermediate"
	// RoleOutput holds final deliverables. Never discarded.
	RoleOutput Role = "output"
)

// Logger is the minimal logging interface needed for cleanup reporting.
// Defined here so workdir stays dependency-light and testable.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
}

// Manager maps roles to filesystem paths and applies their retention
// policies. The directories are process-owned: concurrent batch runs against
// the same base directory are not supported.
type Manager struct {
	paths map[Role]string
}

// NewManager creates a manager rooted at baseDir (empty means the invocation
// directory). Directories are not created until [Manager.Ensure].
func NewManager(baseDir string) *Manager {
	return &Manager{
		paths: map[Role]string{
			RoleTemp:         filepath.Join(baseDir, config.TempDir),
			RoleIntermediate: filepath.Join(baseDir, config.IntermediateDir),
			RoleOutput:       filepath.Join(baseDir, config.OutputDir),
		},
	}
}

// Path returns the directory for role. The directory may not exist yet.
func (m *Manager) Path(role Role) string {
	return m.paths[role]
}

// Ensure idempotently creates the directory for role. Leftover contents from
// an interrupted earlier run are tolerated silently. A creation failure
// (permissions, disk full) is fatal for the session: no stage can proceed
// without its working directories.
func (m *Manager) Ensure(role Role) error {
	path, ok := m.paths[role]
	if !ok {
		return fmt.Errorf("unknown working directory role %q", role)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create %s directory %s: %w", role, path, err)
	}
	return nil
}

// EnsureAll creates all three working directories.
func (m *Manager) EnsureAll() error {
	for _, role := range []Role{RoleTemp, RoleIntermediate, RoleOutput} {
		if err := m.Ensure(role); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup removes the temp tree unconditionally and the intermediate tree
// unless retainIntermediate is set. The output directory is never touched.
// Removal failures are logged and swallowed: a half-cleaned directory must
// never abort the batch, and the next run's Ensure calls will reuse it.
func (m *Manager) Cleanup(retainIntermediate bool, log Logger) {
	if err := os.RemoveAll(m.paths[RoleTemp]); err != nil {
		log.Warn("Could not remove temp directory %s: %v", m.paths[RoleTemp], err)
	}

	if retainIntermediate {
		log.Info("Intermediate files saved in: %s", m.paths[RoleIntermediate])
		return
	}
	if err := os.RemoveAll(m.paths[RoleIntermediate]); err != nil {
		log.Warn("Could not remove intermediate directory %s: %v", m.paths[RoleIntermediate], err)
	}
}
