package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/backmassage/audiomaster/internal/config"
	"github.com/backmassage/audiomaster/internal/display"
	"github.com/backmassage/audiomaster/internal/naming"
	"github.com/backmassage/audiomaster/internal/workdir"
)

// JobFailure describes one failed job for the batch report.
type JobFailure struct {
	Name   string
	Stage  StageID
	Reason error
}

// BatchResult aggregates one batch run.
type BatchResult struct {
	Succeeded int
	Total     int
	Failures  []JobFailure
	Jobs      []*Job
}

// RunBatch creates one job per file and drives each through the pipeline
// sequentially, in discovery order. Per-job outcomes are logged as they
// happen; working-directory cleanup runs exactly once, no matter how many
// jobs failed.
func (p *Pipeline) RunBatch(ctx context.Context, files []string, cfg config.BatchConfig) BatchResult {
	defer p.Dirs.Cleanup(cfg.RetainIntermediate, p.Log)

	resolver := naming.NewCollisionResolver()
	res := BatchResult{Total: len(files)}

	for i, path := range files {
		if ctx.Err() != nil {
			p.Log.Warn("Interrupted")
			break
		}

		job := NewJob(path)
		requested := filepath.Join(p.Dirs.Path(workdir.RoleOutput), naming.WithExt(path, config.DeliverableExt))
		job.OutputPath = resolver.Resolve(path, requested)

		p.Log.Info("[%d/%d] Processing: %s", i+1, res.Total, job.DisplayName)
		p.RunJob(ctx, job, cfg)
		res.Jobs = append(res.Jobs, job)

		if job.Status == StatusSucceeded {
			res.Succeeded++
			p.reportSuccess(job)
		} else {
			res.Failures = append(res.Failures, JobFailure{
				Name:   job.DisplayName,
				Stage:  job.FailedStage,
				Reason: job.FailureReason(),
			})
			p.Log.Error("Failed: %s (%s: %v)", job.DisplayName, job.FailedStage, job.FailureReason())
		}
	}

	return res
}

func (p *Pipeline) reportSuccess(job *Job) {
	if lr := job.Loudness(); lr != nil {
		p.Log.Info("Loudness: %s -> %s",
			display.FormatLoudness(lr.Measured), display.FormatLoudness(lr.Target))
	}
	if fi, err := os.Stat(job.FinalPath); err == nil {
		p.Log.Success("Success: %s (%s)", filepath.Base(job.FinalPath), display.FormatBytes(fi.Size()))
		return
	}
	p.Log.Success("Success: %s", job.DisplayName)
}
