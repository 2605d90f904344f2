package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// FFmpeg invokes the ffmpeg/ffprobe binaries found on PATH. When Verbose is
// set, subprocess stderr is tee'd to os.Stderr in real time; otherwise it is
// captured silently and surfaced only on failure.
type FFmpeg struct {
	Verbose bool
}

// New returns an FFmpeg executor.
func New(verbose bool) *FFmpeg {
	return &FFmpeg{Verbose: verbose}
}

// ExecResult holds the outcome of a single subprocess invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// run executes name with args, capturing stderr. The context cancels the
// subprocess.
func (f *FFmpeg) run(ctx context.Context, name string, args ...string) ExecResult {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	if f.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// opError converts a failed ExecResult into an error that carries the last
// meaningful stderr line, which is where ffmpeg reports decode and codec
// problems.
func (r ExecResult) opError(op string) error {
	if r.Err == nil {
		return nil
	}
	if tail := lastStderrLine(r.Stderr); tail != "" {
		return fmt.Errorf("%s: %w (%s)", op, r.Err, tail)
	}
	return fmt.Errorf("%s: %w", op, r.Err)
}

// lastStderrLine returns the last non-empty line of stderr output.
func lastStderrLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
