package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleLoudnormStderr mimics real ffmpeg output: banner noise, progress
// lines, then the loudnorm JSON report.
const sampleLoudnormStderr = `size=N/A time=00:03:12.41 bitrate=N/A speed= 312x
video:0kB audio:36076kB subtitle:0kB other streams:0kB global headers:0kB muxing overhead: unknown
[Parsed_loudnorm_0 @ 0x55c0a8e5d2c0]
{
	"input_i" : "-28.47",
	"input_tp" : "-9.12",
	"input_lra" : "6.30",
	"input_thresh" : "-38.91",
	"output_i" : "-23.95",
	"output_tp" : "-4.66",
	"output_lra" : "5.90",
	"output_thresh" : "-34.37",
	"normalization_type" : "dynamic",
	"target_offset" : "-0.05"
}
`

func TestParseLoudnormStats(t *testing.T) {
	stats, err := ParseLoudnormStats(sampleLoudnormStderr)
	require.NoError(t, err)
	assert.Equal(t, "-28.47", stats.InputI)
	assert.Equal(t, "-9.12", stats.InputTP)
	assert.Equal(t, "6.30", stats.InputLRA)
	assert.Equal(t, "-38.91", stats.InputThresh)
}

func TestParseLoudnormStats_SilentInput(t *testing.T) {
	stderr := `[Parsed_loudnorm_0 @ 0x55] {
	"input_i" : "-inf",
	"input_tp" : "-inf",
	"input_lra" : "0.00",
	"input_thresh" : "-inf"
}`
	stats, err := ParseLoudnormStats(stderr)
	require.NoError(t, err)
	assert.Equal(t, "-inf", stats.InputI)
}

func TestParseLoudnormStats_NoJSON(t *testing.T) {
	_, err := ParseLoudnormStats("ffmpeg version 6.1 Copyright (c) 2000-2023\nno report here")
	assert.Error(t, err)
}

func TestParseLoudnormStats_MalformedJSON(t *testing.T) {
	_, err := ParseLoudnormStats(`noise {"input_i" : } more noise`)
	assert.Error(t, err)
}
