package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// TrackInfo is the audio-relevant subset of an ffprobe inspection.
type TrackInfo struct {
	FormatName string  // Container short name ("wav", "mp3", "flac", ...).
	Codec      string  // Audio codec name ("pcm_s16le", "mp3", ...).
	SampleRate int     // Hz.
	Channels   int
	Duration   float64 // Seconds.
}

// IsCanonicalPCM reports whether the track already matches the pipeline's
// canonical intermediate format: a WAV container carrying PCM samples at
// 48 kHz. Format Normalize passes such inputs through unchanged.
func (t *TrackInfo) IsCanonicalPCM() bool {
	return t.FormatName == "wav" &&
		strings.HasPrefix(t.Codec, "pcm_") &&
		t.SampleRate == 48000
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// audio track info. Inputs without an audio stream are an error.
func (f *FFmpeg) Probe(ctx context.Context, path string) (*TrackInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseProbeJSON(out)
}

// IsCanonicalPCM probes path and reports whether it is already in the
// canonical intermediate format.
func (f *FFmpeg) IsCanonicalPCM(ctx context.Context, path string) (bool, error) {
	info, err := f.Probe(ctx, path)
	if err != nil {
		return false, err
	}
	return info.IsCanonicalPCM(), nil
}

// ParseProbeJSON converts raw ffprobe JSON output into a TrackInfo.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*TrackInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	info := &TrackInfo{
		// format_name can be a comma-separated alias list; the first entry
		// is the canonical short name.
		FormatName: firstFormatName(raw.Format.FormatName),
		Duration:   parseFloat(raw.Format.Duration),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "audio" {
			continue
		}
		info.Codec = s.CodecName
		info.SampleRate = parseInt(s.SampleRate)
		info.Channels = s.Channels
		return info, nil
	}
	return nil, fmt.Errorf("no audio stream found")
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type ffprobeStream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

func firstFormatName(s string) string {
	if idx := strings.Index(s, ","); idx >= 0 {
		return s[:idx]
	}
	return s
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
