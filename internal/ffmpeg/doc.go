// Package ffmpeg drives the external ffmpeg/ffprobe binaries that provide
// the decode/resample/encode and loudness capabilities.
//
// Every operation is a single subprocess invocation with captured stderr:
//   - Probe: ffprobe JSON inspection (container, codec, sample rate)
//   - ToPCM: decode/resample any supported input to 48 kHz s16 stereo WAV
//   - ToMP3: encode PCM to the 320 kbps MP3 deliverable
//   - Measure: integrated loudness via the loudnorm filter's JSON report
//   - Normalize: gain-adjusted rendering via the volume filter
package ffmpeg
