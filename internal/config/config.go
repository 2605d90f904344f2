// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation, plus the per-batch settings gathered interactively.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Target loudness bounds. A target is valid when MinTargetLoudness < t < MaxTargetLoudness.
const (
	MinTargetLoudness = -70.0
	MaxTargetLoudness = 0.0
)

// DefaultTargetLoudness is the broadcast standard applied when the user
// accepts the default preset.
const DefaultTargetLoudness = -23.0

// Working directory names, created beside the invocation directory.
const (
	DefaultInputDir = "Source_Audio"
	OutputDir       = "Mastered_Audio_Output"
	TempDir         = "Temp_Conversion_Cache"
	IntermediateDir = "Intermediate_Loudness_Norm"
)

// Audio processing constants. The canonical intermediate format is what every
// stage after Format Normalize assumes.
const (
	CanonicalSampleRate = 48000  // Hz
	CanonicalChannels   = 2      // stereo
	DeliverableBitrate  = "320k" // MP3 output bitrate
	DeliverableExt      = ".mp3"
	CanonicalExt        = ".wav"
)

// LoudnessPreset is one entry of the interactive target-loudness menu.
type LoudnessPreset struct {
	Name string
	LUFS float64
}

// LoudnessPresets are offered in menu order; a free-form custom value is
// always the last menu entry.
var LoudnessPresets = []LoudnessPreset{
	{Name: "TV / Broadcast (EBU R128)", LUFS: -23.0},
	{Name: "Podcast / Mobile (AES)", LUFS: -16.0},
	{Name: "Music Streaming (Spotify/YT)", LUFS: -14.0},
}

// supportedExtensions is the fixed input-format set (lowercase, leading dot).
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".flac": true,
	".m4a":  true,
	".wma":  true,
	".aac":  true,
	".alac": true,
	".aiff": true,
}

// SupportedExtension reports whether path has a supported audio extension
// (case-insensitive).
func SupportedExtension(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensionList returns the supported extensions in a stable order
// for user-facing messages.
func SupportedExtensionList() []string {
	return []string{".mp3", ".wav", ".ogg", ".flac", ".m4a", ".wma", ".aac", ".alac", ".aiff"}
}

// Config holds all session-level settings. It is populated by [DefaultConfig]
// and then mutated by [ParseFlags] before being passed (by pointer) to
// packages that need it.
type Config struct {
	// Paths. BaseDir anchors the working directories; empty means the
	// invocation directory.
	BaseDir  string
	InputDir string // Default input folder name, relative to BaseDir.

	// Pipeline shape.
	EnhanceEnabled bool // Default: true. Cleared by --no-enhance.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		InputDir:       DefaultInputDir,
		EnhanceEnabled: true,
		Verbose:        false,
		ColorMode:      ColorAuto,
		CheckOnly:      false,
	}
}

// Validate checks that enum fields hold valid values.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.InputDir == "" {
		return fmt.Errorf("default input directory must not be empty")
	}
	return nil
}

// BatchConfig carries the settings for one batch run. It is assembled by the
// interactive session and is read-only for the duration of the batch.
type BatchConfig struct {
	TargetLoudness     float64 // LUFS, strictly between MinTargetLoudness and MaxTargetLoudness.
	Source             string  // User-supplied path; empty selects the default input folder.
	RetainIntermediate bool    // Keep the intermediate directory after the batch.
}

// ValidateTargetLoudness checks the (-70, 0) open interval required by the
// loudness capability. Out-of-range values are rejected before any batch runs.
func ValidateTargetLoudness(t float64) error {
	if t <= MinTargetLoudness || t >= MaxTargetLoudness {
		return fmt.Errorf("target loudness must be between %g and %g (exclusive), got %g",
			MinTargetLoudness, MaxTargetLoudness, t)
	}
	return nil
}
