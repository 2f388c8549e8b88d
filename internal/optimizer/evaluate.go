package optimizer

// NeedsResize reports whether either dimension exceeds maxDimension.
// A dimension exactly at the bound is within bounds.
func NeedsResize(m Measurement, maxDimension int) bool {
	return m.Width > maxDimension || m.Height > maxDimension
}

// SavingsPercent computes the integer percentage reduction from before
// to after, truncated toward zero. A zero before-size yields zero
// rather than dividing by it.
func SavingsPercent(before, after int64) int {
	if before == 0 {
		return 0
	}
	return int((before - after) * 100 / before)
}

// Decision is the evaluator's verdict on one processed item.
type Decision struct {
	Commit       bool
	SavedPercent int
}

// Evaluate decides whether processed bytes are worth keeping: commit
// when the truncated savings percent reaches the threshold, or
// unconditionally when the item was resized (bounding pixel dimensions
// is worth keeping even if byte size grew). A zero before-size always
// discards.
func Evaluate(before, after int64, wasResized bool, minSavingsPercent int) Decision {
	if before == 0 {
		return Decision{Commit: false, SavedPercent: 0}
	}
	pct := SavingsPercent(before, after)
	return Decision{
		Commit:       pct >= minSavingsPercent || wasResized,
		SavedPercent: pct,
	}
}
