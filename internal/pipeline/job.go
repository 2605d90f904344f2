package pipeline

import (
	"fmt"
	"path/filepath"
)

// StageID names one transformation of the fixed pipeline.
type StageID string

const (
	StageFormatNormalize   StageID = "FormatNormalize"
	StageLoudnessNormalize StageID = "LoudnessNormalize"
	StageEnhance           StageID = "Enhance"
	StageFinalizeEncode    StageID = "FinalizeEncode"
)

// Status is a job's terminal state.
type Status int

const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// LoudnessReport carries the measured and applied loudness values from the
// Loudness Normalize stage, for user-facing reporting.
type LoudnessReport struct {
	Measured float64 // Integrated loudness before normalization, LUFS.
	Target   float64 // Applied target, LUFS.
}

// StageOutcome records the result of one stage applied to one job.
// Immutable once recorded.
type StageOutcome struct {
	Stage         StageID
	Artifact      string          // Produced artifact path; empty on failure.
	PassedThrough bool            // Stage returned its input unchanged (skip condition).
	Loudness      *LoudnessReport // Set by the Loudness Normalize stage on success.
	Err           error           // Non-nil on failure.
}

// Failed reports whether the stage failed.
func (o StageOutcome) Failed() bool { return o.Err != nil }

// Job is one input file moving through the pipeline. It is created by the
// batch controller and mutated only by the runner driving it through stages.
type Job struct {
	SourcePath  string
	DisplayName string
	OutputPath  string // Claimed deliverable path, collision-resolved per batch.

	Outcomes    []StageOutcome
	Status      Status
	FailedStage StageID // Valid only when Status is StatusFailed.
	FinalPath   string  // Valid only when Status is StatusSucceeded.
}

// NewJob creates a pending job for one source file.
func NewJob(sourcePath string) *Job {
	return &Job{
		SourcePath:  sourcePath,
		DisplayName: filepath.Base(sourcePath),
		Status:      StatusPending,
	}
}

// Loudness returns the loudness report recorded by the normalize stage, or
// nil if that stage has not succeeded.
func (j *Job) Loudness() *LoudnessReport {
	for _, o := range j.Outcomes {
		if o.Stage == StageLoudnessNormalize && !o.Failed() {
			return o.Loudness
		}
	}
	return nil
}

// FailureReason returns the error recorded at the failed stage, or nil.
func (j *Job) FailureReason() error {
	for _, o := range j.Outcomes {
		if o.Failed() {
			return o.Err
		}
	}
	return nil
}
