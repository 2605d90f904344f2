package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/audiomaster/internal/config"
	"github.com/backmassage/audiomaster/internal/naming"
	"github.com/backmassage/audiomaster/internal/progress"
	"github.com/backmassage/audiomaster/internal/workdir"
)

// Capability contracts for the external collaborators. Defined here, on the
// consumer side, so the pipeline can be exercised in tests with fakes and
// stays independent of how the capabilities are provided.

// Transcoder is the decode/resample/encode capability.
type Transcoder interface {
	// ToPCM produces a canonical 48 kHz PCM WAV rendering of any supported
	// input container.
	ToPCM(ctx context.Context, src, dst string) error
	// ToMP3 encodes PCM into the fixed-bitrate MP3 deliverable.
	ToMP3(ctx context.Context, src, dst string) error
}

// LoudnessMeter is the loudness measurement and gain-rendering capability.
type LoudnessMeter interface {
	// Measure returns the integrated loudness of path in LUFS.
	Measure(ctx context.Context, path string) (float64, error)
	// Normalize writes a gain-adjusted copy of src to dst moving its
	// integrated loudness from measured to target.
	Normalize(ctx context.Context, src, dst string, measured, target float64) error
}

// Prober inspects an input for the Format Normalize skip decision.
type Prober interface {
	// IsCanonicalPCM reports whether path already is a 48 kHz PCM WAV.
	IsCanonicalPCM(ctx context.Context, path string) (bool, error)
}

// Enhancer is the neural noise-suppression capability. Present only when a
// model handle was initialized for the session.
type Enhancer interface {
	// Enhance writes the enhanced rendering of src into dstDir under the
	// source basename and returns the produced path.
	Enhance(ctx context.Context, src, dstDir string) (string, error)
}

// Logger is the minimal logging interface the pipeline needs. Defined here
// (rather than importing the logging package) so tests can pass a mock.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Pipeline drives jobs through the fixed stage sequence using the configured
// capabilities. One Pipeline serves one session; it holds no per-batch state.
type Pipeline struct {
	Dirs       *workdir.Manager
	Transcoder Transcoder
	Loudness   LoudnessMeter
	Prober     Prober
	Enhancer   Enhancer // nil disables the Enhance stage for the session.
	Log        Logger

	// IndicatorOut receives spinner animation; nil keeps stages silent
	// (tests, non-TTY). Interval 0 means progress.DefaultInterval.
	IndicatorOut      io.Writer
	IndicatorInterval time.Duration

	Verbose bool
}

// stage pairs a stage identifier with its work function. The function writes
// its results into out; a returned error marks the stage (and the job) failed.
type stage struct {
	id    StageID
	label string
	fn    func(ctx context.Context, input string, out *StageOutcome) error
}

// execute runs one stage with the progress indicator wrapped around it and
// converts any collaborator error into a failure outcome. Errors never
// propagate past this boundary.
func (p *Pipeline) execute(ctx context.Context, st stage, input string) StageOutcome {
	out := StageOutcome{Stage: st.id}

	ind := progress.New(st.label, p.IndicatorOut, p.IndicatorInterval)
	ind.Start()
	// The indicator must be stopped (and its goroutine joined) before the
	// outcome is reported, even when the stage fails.
	defer ind.Stop()

	if err := st.fn(ctx, input, &out); err != nil {
		out.Err = err
		out.Artifact = ""
	}
	return out
}

// stagesFor builds the active stage list for one job. The pipeline has 3 or
// 4 stages depending on whether an enhancer was configured for the session;
// the arity never changes per file.
func (p *Pipeline) stagesFor(job *Job, cfg config.BatchConfig) []stage {
	stages := []stage{
		{
			id:    StageFormatNormalize,
			label: "Converting " + job.DisplayName,
			fn: func(ctx context.Context, input string, out *StageOutcome) error {
				return p.formatNormalize(ctx, job, input, out)
			},
		},
		{
			id:    StageLoudnessNormalize,
			label: "Normalizing Loudness",
			fn: func(ctx context.Context, input string, out *StageOutcome) error {
				return p.loudnessNormalize(ctx, job, cfg.TargetLoudness, input, out)
			},
		},
	}

	if p.Enhancer != nil {
		stages = append(stages, stage{
			id:    StageEnhance,
			label: "Enhancing Audio (DeepFilter)",
			fn: func(ctx context.Context, input string, out *StageOutcome) error {
				return p.enhance(ctx, input, out)
			},
		})
	}

	stages = append(stages, stage{
		id:    StageFinalizeEncode,
		label: "Finalizing to " + config.DeliverableExt,
		fn: func(ctx context.Context, input string, out *StageOutcome) error {
			return p.finalizeEncode(ctx, job, input, out)
		},
	})
	return stages
}

// formatNormalize decodes/resamples the source into the temp directory. An
// input that already is a 48 kHz PCM WAV is passed through unchanged; the
// skip is decided by probing the file, so it is deterministic per input, not
// per run.
func (p *Pipeline) formatNormalize(ctx context.Context, job *Job, input string, out *StageOutcome) error {
	canonical, err := p.Prober.IsCanonicalPCM(ctx, input)
	if err != nil {
		// An unprobeable file may still decode; leave the verdict to the
		// converter, which reports the real failure if there is one.
		p.Log.Debug(p.Verbose, "Probe failed for %s, converting anyway: %v", job.DisplayName, err)
	} else if canonical {
		out.Artifact = input
		out.PassedThrough = true
		return nil
	}

	if err := p.Dirs.Ensure(workdir.RoleTemp); err != nil {
		return err
	}
	dst := filepath.Join(p.Dirs.Path(workdir.RoleTemp), naming.WithExt(job.SourcePath, config.CanonicalExt))
	if err := p.Transcoder.ToPCM(ctx, input, dst); err != nil {
		return err
	}
	out.Artifact = dst
	return nil
}

// loudnessNormalize measures integrated loudness and renders a gain-adjusted
// copy into the intermediate directory under the job's original basename.
func (p *Pipeline) loudnessNormalize(ctx context.Context, job *Job, target float64, input string, out *StageOutcome) error {
	measured, err := p.Loudness.Measure(ctx, input)
	if err != nil {
		return err
	}

	if err := p.Dirs.Ensure(workdir.RoleIntermediate); err != nil {
		return err
	}
	dst := filepath.Join(p.Dirs.Path(workdir.RoleIntermediate), naming.WithExt(job.SourcePath, config.CanonicalExt))
	if err := p.Loudness.Normalize(ctx, input, dst, measured, target); err != nil {
		return err
	}

	out.Artifact = dst
	out.Loudness = &LoudnessReport{Measured: measured, Target: target}
	return nil
}

// enhance runs neural noise suppression, writing into the output directory
// under the canonical intermediate extension.
func (p *Pipeline) enhance(ctx context.Context, input string, out *StageOutcome) error {
	if err := p.Dirs.Ensure(workdir.RoleOutput); err != nil {
		return err
	}
	artifact, err := p.Enhancer.Enhance(ctx, input, p.Dirs.Path(workdir.RoleOutput))
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(artifact); statErr != nil {
		return fmt.Errorf("enhancer reported success but produced no artifact: %w", statErr)
	}
	out.Artifact = artifact
	return nil
}

// finalizeEncode encodes the last artifact to the deliverable path claimed
// for the job. When the enhance stage ran, its transient WAV (which lives in
// the output directory) is deleted after a successful encode.
func (p *Pipeline) finalizeEncode(ctx context.Context, job *Job, input string, out *StageOutcome) error {
	if err := p.Dirs.Ensure(workdir.RoleOutput); err != nil {
		return err
	}
	if err := p.Transcoder.ToMP3(ctx, input, job.OutputPath); err != nil {
		return err
	}
	out.Artifact = job.OutputPath

	if p.Enhancer != nil {
		if err := os.Remove(input); err != nil {
			p.Log.Debug(p.Verbose, "Could not remove transient enhance artifact %s: %v", input, err)
		}
	}
	return nil
}
