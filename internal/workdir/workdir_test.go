package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func TestEnsure_CreatesDirectory(t *testing.T) {
	m := NewManager(t.TempDir())

	require.NoError(t, m.Ensure(RoleTemp))
	fi, err := os.Stat(m.Path(RoleTemp))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsure_Idempotent(t *testing.T) {
	m := NewManager(t.TempDir())

	require.NoError(t, m.Ensure(RoleOutput))
	// A file placed by a previous run must survive the second Ensure.
	marker := filepath.Join(m.Path(RoleOutput), "clip.mp3")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))

	require.NoError(t, m.Ensure(RoleOutput))
	_, err := os.Stat(marker)
	assert.NoError(t, err, "existing contents must be preserved")
}

func TestEnsure_UnknownRole(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.Error(t, m.Ensure(Role("cache")))
}

func TestCleanup_RemovesTempAndIntermediate(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.EnsureAll())

	m.Cleanup(false, nopLogger{})

	_, err := os.Stat(m.Path(RoleTemp))
	assert.True(t, os.IsNotExist(err), "temp must be removed")
	_, err = os.Stat(m.Path(RoleIntermediate))
	assert.True(t, os.IsNotExist(err), "intermediate must be removed")
	_, err = os.Stat(m.Path(RoleOutput))
	assert.NoError(t, err, "output must never be removed")
}

func TestCleanup_RetainsIntermediate(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.EnsureAll())
	artifact := filepath.Join(m.Path(RoleIntermediate), "clip.wav")
	require.NoError(t, os.WriteFile(artifact, []byte("pcm"), 0o644))

	m.Cleanup(true, nopLogger{})

	_, err := os.Stat(m.Path(RoleTemp))
	assert.True(t, os.IsNotExist(err), "temp is removed regardless of retention")
	_, err = os.Stat(artifact)
	assert.NoError(t, err, "retained intermediate artifact must survive")
}

func TestCleanup_MissingDirsAreNotAnError(t *testing.T) {
	m := NewManager(t.TempDir())
	// Nothing ensured; cleanup over absent directories must not panic.
	m.Cleanup(false, nopLogger{})
}
