package pipeline

import (
	"context"

	"github.com/backmassage/audiomaster/internal/config"
)

// RunJob drives one job through the active stage list in strict order. The
// first stage failure marks the job failed-at-stage and skips the remaining
// stages; partial artifacts from earlier stages stay in place for batch-level
// cleanup. RunJob never returns an error: every failure is represented in the
// returned job record.
func (p *Pipeline) RunJob(ctx context.Context, job *Job, cfg config.BatchConfig) *Job {
	input := job.SourcePath
	for _, st := range p.stagesFor(job, cfg) {
		out := p.execute(ctx, st, input)
		job.Outcomes = append(job.Outcomes, out)
		if out.Failed() {
			job.Status = StatusFailed
			job.FailedStage = st.id
			return job
		}
		// The artifact of stage k is the input of stage k+1.
		input = out.Artifact
	}

	job.Status = StatusSucceeded
	job.FinalPath = input
	return job
}
