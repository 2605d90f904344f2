// Package pipeline orchestrates one batch run: input discovery, the fixed
// per-file stage sequence, failure isolation, and aggregate reporting.
//
// A Job moves through Format Normalize → Loudness Normalize → Enhance
// (when configured) → Finalize Encode. Stages run strictly in order; the
// first failing stage marks the job failed and later stages are skipped.
// Failures never cross a job boundary: the batch continues with the next
// file and working-directory cleanup runs exactly once per batch.
package pipeline
