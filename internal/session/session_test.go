package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/audiomaster/internal/config"
	"github.com/backmassage/audiomaster/internal/pipeline"
	"github.com/backmassage/audiomaster/internal/workdir"
)

// --- fakes ---

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})        {}
func (fakeLogger) Success(string, ...interface{})     {}
func (fakeLogger) Warn(string, ...interface{})        {}
func (fakeLogger) Error(string, ...interface{})       {}
func (fakeLogger) Debug(bool, string, ...interface{}) {}

type fakeTranscoder struct{}

func (fakeTranscoder) ToPCM(_ context.Context, _, dst string) error {
	return os.WriteFile(dst, []byte("pcm"), 0o644)
}

func (fakeTranscoder) ToMP3(_ context.Context, _, dst string) error {
	return os.WriteFile(dst, []byte("mp3"), 0o644)
}

type fakeMeter struct{}

func (fakeMeter) Measure(_ context.Context, _ string) (float64, error) { return -29.1, nil }

func (fakeMeter) Normalize(_ context.Context, _, dst string, _, _ float64) error {
	return os.WriteFile(dst, []byte("norm"), 0o644)
}

type fakeProber struct{}

func (fakeProber) IsCanonicalPCM(context.Context, string) (bool, error) { return false, nil }

// --- helpers ---

func newTestSession(t *testing.T, script string) (*Session, string) {
	t.Helper()
	base := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.BaseDir = base

	dirs := workdir.NewManager(base)
	pipe := &pipeline.Pipeline{
		Dirs:       dirs,
		Transcoder: fakeTranscoder{},
		Loudness:   fakeMeter{},
		Prober:     fakeProber{},
		Log:        fakeLogger{},
	}

	var out strings.Builder
	s := New(&cfg, fakeLogger{}, pipe, dirs, strings.NewReader(script), &out)
	return s, base
}

func addSource(t *testing.T, base, name string) string {
	t.Helper()
	dir := filepath.Join(base, config.DefaultInputDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return path
}

// --- tests ---

func TestRun_OneBatchThenExit(t *testing.T) {
	// preset default, default folder, no retention, do not continue
	script := "\n\n\nn\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.mp3")

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateTerminated, s.State())

	out := filepath.Join(base, config.OutputDir, "clip.mp3")
	_, err := os.Stat(out)
	assert.NoError(t, err, "deliverable must exist after the batch")
	assert.Equal(t, config.DefaultTargetLoudness, s.batch.TargetLoudness)
	assert.False(t, s.batch.RetainIntermediate)
}

func TestRun_PresetSelection(t *testing.T) {
	script := "2\n\n\nn\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.wav")

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, -16.0, s.batch.TargetLoudness, "preset 2 is the podcast target")
}

func TestRun_CustomLoudnessRejectsOutOfRange(t *testing.T) {
	// choice 4 = custom; -70 and 0 are rejected, -18.5 accepted
	script := "4\n-70\n0\n-18.5\n\n\nn\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.flac")

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, -18.5, s.batch.TargetLoudness)
}

func TestRun_RetentionFlag(t *testing.T) {
	script := "\n\ny\nn\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.mp3")

	require.NoError(t, s.Run(context.Background()))
	assert.True(t, s.batch.RetainIntermediate)

	intermediate := filepath.Join(base, config.IntermediateDir, "clip.wav")
	_, err := os.Stat(intermediate)
	assert.NoError(t, err, "retained intermediate artifact must survive the batch")
}

func TestRun_FirstRunCreatesDefaultFolder(t *testing.T) {
	// default preset, default (missing) folder, then decline retry
	script := "\n\nn\n"
	s, base := newTestSession(t, script)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateTerminated, s.State())

	fi, err := os.Stat(filepath.Join(base, config.DefaultInputDir))
	require.NoError(t, err)
	assert.True(t, fi.IsDir(), "default input folder must be created on first run")
}

func TestRun_InvalidPathReprompts(t *testing.T) {
	// A nonexistent path logs an error and re-prompts; the retry falls back
	// to the default folder which does contain a file.
	script := "\n/definitely/not/here\n\n\nn\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.mp3")

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateTerminated, s.State())
	assert.Equal(t, 1, s.result.Succeeded)
}

func TestRun_EOFIsGracefulExit(t *testing.T) {
	s, _ := newTestSession(t, "")
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateTerminated, s.State())
}

func TestRun_TwoBatches(t *testing.T) {
	// batch 1: default preset; continue. batch 2: preset 3; exit with q.
	script := "\n\n\n\n3\n\n\nq\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.mp3")

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, -14.0, s.batch.TargetLoudness, "second batch used the music preset")
	assert.Equal(t, 1, s.result.Succeeded)
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"/music/in"`, "/music/in"},
		{`'/music/in'`, "/music/in"},
		{`  /music/in  `, "/music/in"},
		{`"/music/with space" `, "/music/with space"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLoudness(t *testing.T) {
	if _, err := parseLoudness("abc"); err == nil {
		t.Error("non-numeric input must be rejected")
	}
	if _, err := parseLoudness("-71"); err == nil {
		t.Error("below-range input must be rejected")
	}
	v, err := parseLoudness(" -16.0 ")
	if err != nil || v != -16.0 {
		t.Errorf("parseLoudness(-16.0) = %v, %v", v, err)
	}
}

func TestStateString(t *testing.T) {
	for st, want := range map[State]string{
		StateConfiguring:   "Configuring",
		StateAwaitingInput: "AwaitingInput",
		StateEmpty:         "Empty",
		StateQueued:        "Queued",
		StateRunning:       "Running",
		StateReporting:     "Reporting",
		StateTerminated:    "Terminated",
	} {
		if st.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(st), st.String(), want)
		}
	}
}

func TestRun_EnsureFailureIsFatal(t *testing.T) {
	script := "\n\n\n"
	s, base := newTestSession(t, script)
	addSource(t, base, "clip.mp3")

	// Occupy the temp directory path with a file so EnsureAll fails.
	require.NoError(t, os.WriteFile(filepath.Join(base, config.TempDir), []byte("x"), 0o644))

	err := s.Run(context.Background())
	require.Error(t, err, "directory creation failure must abort the session")
	assert.False(t, errors.Is(err, context.Canceled))
}
