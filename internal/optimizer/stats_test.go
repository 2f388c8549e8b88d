package optimizer

import "testing"

func TestRunStatsRecord(t *testing.T) {
	var s RunStats
	s.Found = 4

	s.Record(Outcome{Status: StatusCommitted, Resized: true, SizeBefore: 1000, SizeAfter: 400})
	s.Record(Outcome{Status: StatusCommitted, SizeBefore: 500, SizeAfter: 450})
	s.Record(Outcome{Status: StatusDiscarded, SizeBefore: 300, SizeAfter: 300})
	s.Record(Outcome{Status: StatusFailed, SizeBefore: 200, SizeAfter: 200})

	if s.Processed != 2 || s.Resized != 1 || s.Skipped != 1 || s.Errors != 1 {
		t.Errorf("counters = %+v", s)
	}
	if got := s.Processed + s.Skipped + s.Errors; got != s.Found {
		t.Errorf("processed+skipped+errors = %d, want %d", got, s.Found)
	}
	if s.SizeBefore != 2000 || s.SizeAfter != 1350 {
		t.Errorf("byte totals = %d/%d, want 2000/1350", s.SizeBefore, s.SizeAfter)
	}
	if s.BytesSaved() != 650 {
		t.Errorf("BytesSaved = %d, want 650", s.BytesSaved())
	}
	// 650*100/2000 = 32.5, truncated.
	if s.SavedPercent() != 32 {
		t.Errorf("SavedPercent = %d, want 32", s.SavedPercent())
	}
}

func TestRunStatsEmptyRunPercent(t *testing.T) {
	var s RunStats
	if s.SavedPercent() != 0 {
		t.Errorf("empty run must not divide by zero, got %d", s.SavedPercent())
	}
}
