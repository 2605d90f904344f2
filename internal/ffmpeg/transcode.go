package ffmpeg

import (
	"context"
	"strconv"

	"github.com/backmassage/audiomaster/internal/config"
)

// ToPCM decodes src (any supported container) and writes a canonical PCM
// rendering to dst: WAV, 48 kHz, s16, stereo. Video streams (e.g. embedded
// cover art) are dropped.
func (f *FFmpeg) ToPCM(ctx context.Context, src, dst string) error {
	res := f.run(ctx, "ffmpeg",
		"-hide_banner", "-nostdin", "-y",
		"-i", src,
		"-vn",
		"-ar", strconv.Itoa(config.CanonicalSampleRate),
		"-ac", strconv.Itoa(config.CanonicalChannels),
		"-c:a", "pcm_s16le",
		dst,
	)
	return res.opError("convert to PCM")
}

// ToMP3 encodes src (PCM) to the MP3 deliverable at dst at the fixed
// 320 kbps bitrate.
func (f *FFmpeg) ToMP3(ctx context.Context, src, dst string) error {
	res := f.run(ctx, "ffmpeg",
		"-hide_banner", "-nostdin", "-y",
		"-i", src,
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", config.DeliverableBitrate,
		dst,
	)
	return res.opError("encode MP3")
}
