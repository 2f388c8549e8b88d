// Package optimizer drives the batch image-optimization pipeline:
// discover candidate files, measure each, downscale oversized ones,
// recompress with a format-appropriate external codec, and keep the new
// bytes only when the savings clear the configured threshold.
package optimizer

import (
	"context"
	"os"
	"sync"

	"squish/internal/tools"
	"squish/pkg/imgutil"
)

// Run executes one full optimization pass over root. Per-item failures
// are recorded in the error log and the returned outcomes; only an
// unscannable root, an unopenable error log, or cancellation produce a
// non-nil error. The returned outcomes are in completion order.
func Run(ctx context.Context, root string, opts Options, tc tools.Toolchain, updates chan<- ProgressUpdate) (RunStats, []Outcome, error) {
	var stats RunStats

	SweepScratch(root)

	jobs, err := Discover(root)
	if err != nil {
		return stats, nil, err
	}

	errLog, err := NewErrorLog(opts.ErrorLogPath)
	if err != nil {
		return stats, nil, err
	}
	defer errLog.Close()

	stats.Found = len(jobs)
	if updates != nil {
		updates <- ProgressUpdate{FoundDelta: len(jobs)}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) && len(jobs) > 0 {
		workers = len(jobs)
	}

	jobCh := make(chan Job)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if ctx.Err() != nil {
					return
				}
				results <- processItem(ctx, job, opts, tc)
			}
		}()
	}

	var outcomes []Outcome
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for out := range results {
			stats.Record(out)
			outcomes = append(outcomes, out)
			if out.Status == StatusFailed {
				errLog.Append(out.Path, out.Reason)
			}
			if updates != nil {
				updates <- progressFor(out)
			}
		}
	}()

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	if err := ctx.Err(); err != nil {
		return stats, outcomes, err
	}
	return stats, outcomes, nil
}

func progressFor(out Outcome) ProgressUpdate {
	u := ProgressUpdate{}
	switch out.Status {
	case StatusCommitted:
		u.CommittedDelta = 1
		u.BytesSavedDelta = out.SizeBefore - out.SizeAfter
		if out.Resized {
			u.ResizedDelta = 1
		}
	case StatusDiscarded:
		u.DiscardedDelta = 1
	case StatusFailed:
		u.FailedDelta = 1
	}
	return u
}

// processItem drives one file through measure, conditional resize,
// compress, and the commit/discard decision. The original is only ever
// touched by the final rename; every mutation happens on a scratch copy.
func processItem(ctx context.Context, job Job, opts Options, tc tools.Toolchain) Outcome {
	out := Outcome{Path: job.Path, Display: job.Display}

	m, err := Measure(job.Path)
	if err != nil {
		// Charge the unchanged original to both sides when its size is
		// still knowable, so the totals stay honest.
		if info, statErr := os.Stat(job.Path); statErr == nil {
			out.SizeBefore, out.SizeAfter = info.Size(), info.Size()
		}
		return failed(out, StageInspect, err)
	}
	out.SizeBefore = m.ByteSize
	out.SizeAfter = m.ByteSize

	scratch, err := copyToScratch(job.Path)
	if err != nil {
		return failed(out, StageCopy, err)
	}

	resized := false
	if NeedsResize(m, opts.MaxDimension) {
		if err := tc.Resize(ctx, scratch, opts.MaxDimension); err != nil {
			_ = os.Remove(scratch)
			return failed(out, StageResize, err)
		}
		resized = true
	}

	if err := compressScratch(ctx, tc, scratch, job.Path, opts.JPEGQuality); err != nil {
		_ = os.Remove(scratch)
		return failed(out, StageCompress, err)
	}

	info, err := os.Stat(scratch)
	if err != nil {
		_ = os.Remove(scratch)
		return failed(out, StageCompress, err)
	}

	decision := Evaluate(m.ByteSize, info.Size(), resized, opts.MinSavingsPercent)
	out.SavedPercent = decision.SavedPercent

	if !decision.Commit {
		_ = os.Remove(scratch)
		out.Status = StatusDiscarded
		return out
	}

	if err := commitScratch(scratch, job.Path); err != nil {
		_ = os.Remove(scratch)
		return failed(out, StageCommit, err)
	}

	out.Status = StatusCommitted
	out.Resized = resized
	out.SizeAfter = info.Size()
	return out
}

// compressScratch dispatches on the original's extension. Formats in
// the allow-set without a dedicated codec pass through unchanged.
func compressScratch(ctx context.Context, tc tools.Toolchain, scratch, original string, quality int) error {
	switch imgutil.KindForPath(original) {
	case imgutil.KindJPEG:
		return tc.CompressJPEG(ctx, scratch, quality)
	case imgutil.KindPNG:
		return tc.CompressPNG(ctx, scratch)
	case imgutil.KindGIF:
		return tc.CompressGIF(ctx, scratch)
	default:
		return nil
	}
}

func failed(out Outcome, stage Stage, err error) Outcome {
	out.Status = StatusFailed
	out.Stage = stage
	out.Reason = err.Error()
	return out
}
