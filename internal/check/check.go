// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, the MP3 encoder,
// and the optional DeepFilterNet binary.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrMP3EncodeFailed = errors.New("libmp3lame test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, the MP3 encoder, and the DeepFilterNet binary. This is
// informational only; it does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	checkFfmpeg(log)
	checkFfprobe(log)
	checkMP3(log)
	checkDeepFilter(log)
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		return
	}
	cmd := exec.Command("ffmpeg", "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return
	}
	log.Success("ffmpeg: %s", firstLine(string(out)))
}

func checkFfprobe(log Logger) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Error("ffprobe not found")
		return
	}
	log.Success("ffprobe found")
}

// checkMP3 runs a minimal libmp3lame encode to verify the deliverable
// encoder works.
func checkMP3(log Logger) {
	log.Info("Testing MP3 encoder...")
	if runSilent("ffmpeg", mp3TestArgs()...) {
		log.Success("libmp3lame works")
	} else {
		log.Error("libmp3lame test encode failed")
	}
}

// checkDeepFilter reports whether the optional enhancement binary is on PATH.
func checkDeepFilter(log Logger) {
	path, err := exec.LookPath("deep-filter")
	if err != nil {
		log.Warn("deep-filter not found (enhancement unavailable)")
		return
	}
	cmd := exec.Command(path, "--version")
	out, cerr := cmd.CombinedOutput()
	if cerr != nil {
		log.Warn("deep-filter found but --version failed: %v", cerr)
		return
	}
	log.Success("deep-filter: %s", firstLine(string(out)))
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe are on PATH and that a quick libmp3lame encode succeeds, since
// every successful job ends in an MP3 encode. Returns a sentinel error on
// failure. The deep-filter binary is deliberately not checked here; the
// enhance package probes it only when enhancement is enabled.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent("ffmpeg", mp3TestArgs()...) {
		return ErrMP3EncodeFailed
	}
	return nil
}

// --- internal helpers ---

// mp3TestArgs returns the ffmpeg arguments for a minimal libmp3lame test
// encode against a generated sine tone. Shared by checkMP3 and CheckDeps.
func mp3TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "libmp3lame", "-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
