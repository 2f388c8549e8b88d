package optimizer

// RunStats accumulates counters and byte totals across one run. It has
// a single writer (the collector goroutine in Run) and is read only
// after all outcomes are recorded.
//
// Invariant at run end: Found == Processed + Skipped + Errors.
type RunStats struct {
	Found     int
	Processed int
	Resized   int
	Skipped   int
	Errors    int

	SizeBefore int64
	SizeAfter  int64
}

// Record folds one outcome into the totals. Called exactly once per
// work item.
func (s *RunStats) Record(o Outcome) {
	s.SizeBefore += o.SizeBefore
	s.SizeAfter += o.SizeAfter

	switch o.Status {
	case StatusCommitted:
		s.Processed++
		if o.Resized {
			s.Resized++
		}
	case StatusDiscarded:
		s.Skipped++
	case StatusFailed:
		s.Errors++
	}
}

// BytesSaved is the aggregate reduction. Negative means the run grew
// the tree, which cannot happen for committed items but is reported
// honestly anyway.
func (s *RunStats) BytesSaved() int64 {
	return s.SizeBefore - s.SizeAfter
}

// SavedPercent is the truncated aggregate savings percent, guarded
// against an empty run.
func (s *RunStats) SavedPercent() int {
	return SavingsPercent(s.SizeBefore, s.SizeAfter)
}
