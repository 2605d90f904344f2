package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LoudnormStats is the JSON report printed by ffmpeg's loudnorm filter.
// All values arrive as strings; "-inf" is a legal integrated-loudness value
// for digital silence.
type LoudnormStats struct {
	InputI      string `json:"input_i"`
	InputTP     string `json:"input_tp"`
	InputLRA    string `json:"input_lra"`
	InputThresh string `json:"input_thresh"`
}

// Measure returns the integrated loudness of path in LUFS. It runs the
// loudnorm filter in measurement mode (null muxer, nothing written) and
// parses the JSON report from stderr.
//
// Silence measures as -inf, which no finite gain can correct; that is
// reported as an error rather than a value.
func (f *FFmpeg) Measure(ctx context.Context, path string) (float64, error) {
	res := f.run(ctx, "ffmpeg",
		"-hide_banner", "-nostdin",
		"-i", path,
		"-af", "loudnorm=print_format=json",
		"-f", "null", "-",
	)
	if res.Err != nil {
		return 0, res.opError("measure loudness")
	}

	stats, err := ParseLoudnormStats(res.Stderr)
	if err != nil {
		return 0, fmt.Errorf("measure loudness: %w", err)
	}

	lufs, err := strconv.ParseFloat(strings.TrimSpace(stats.InputI), 64)
	if err != nil {
		return 0, fmt.Errorf("measure loudness: bad integrated value %q: %w", stats.InputI, err)
	}
	if math.IsInf(lufs, 0) || math.IsNaN(lufs) {
		return 0, fmt.Errorf("measure loudness: input has no measurable loudness (silent?)")
	}
	return lufs, nil
}

// Normalize writes a gain-adjusted PCM copy of src to dst so its integrated
// loudness moves from measured to target. The adjustment is a pure gain
// (volume filter), matching how a loudness meter normalizes: one scalar
// applied uniformly, no dynamics processing.
func (f *FFmpeg) Normalize(ctx context.Context, src, dst string, measured, target float64) error {
	gain := target - measured
	res := f.run(ctx, "ffmpeg",
		"-hide_banner", "-nostdin", "-y",
		"-i", src,
		"-af", fmt.Sprintf("volume=%.6fdB", gain),
		"-c:a", "pcm_s16le",
		dst,
	)
	return res.opError("apply loudness gain")
}

// ParseLoudnormStats extracts the loudnorm JSON object from ffmpeg stderr
// output. The filter prints its report among other log lines, so the object
// is located by brace matching rather than parsed wholesale.
func ParseLoudnormStats(stderr string) (*LoudnormStats, error) {
	start := strings.LastIndex(stderr, "{")
	end := strings.LastIndex(stderr, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON report in loudnorm output (%d bytes captured)", len(stderr))
	}

	var stats LoudnormStats
	if err := json.Unmarshal([]byte(stderr[start:end+1]), &stats); err != nil {
		return nil, fmt.Errorf("parse loudnorm JSON: %w", err)
	}
	return &stats, nil
}
