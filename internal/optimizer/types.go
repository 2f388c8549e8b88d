package optimizer

// Options carries the per-run tuning the pipeline needs.
type Options struct {
	MaxDimension      int
	MinSavingsPercent int
	JPEGQuality       int
	Workers           int
	ErrorLogPath      string
}

// Stage names the pipeline step at which an item failed.
type Stage string

const (
	StageInspect  Stage = "inspect"
	StageCopy     Stage = "copy"
	StageResize   Stage = "resize"
	StageCompress Stage = "compress"
	StageCommit   Stage = "commit"
)

// Status is the terminal state of one work item.
type Status int

const (
	// StatusCommitted means the processed bytes replaced the original.
	StatusCommitted Status = iota
	// StatusDiscarded means the savings fell below threshold and the
	// original was left untouched.
	StatusDiscarded
	// StatusFailed means a pipeline stage errored; the original was
	// left untouched and the failure logged.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCommitted:
		return "committed"
	case StatusDiscarded:
		return "discarded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job is one discovered file entering the pipeline.
type Job struct {
	Path    string
	Display string
}

// Measurement is a point-in-time probe of a file: its size on disk and
// pixel dimensions as displayed (EXIF orientation already applied).
type Measurement struct {
	ByteSize int64
	Width    int
	Height   int
}

// Outcome is the terminal record of one item, consumed by the stats
// accumulator and, for failures, the error log.
type Outcome struct {
	Path    string
	Display string
	Status  Status

	// SizeBefore and SizeAfter are the bytes charged to the run totals.
	// For discarded and failed items both sides carry the original size.
	SizeBefore int64
	SizeAfter  int64

	// SavedPercent is the truncated integer savings percent. Meaningful
	// for committed and discarded items.
	SavedPercent int

	// Resized reports whether the committed bytes include a downscale.
	Resized bool

	// Stage and Reason describe a failure; empty otherwise.
	Stage  Stage
	Reason string
}

// ProgressUpdate is a delta event for the live progress display.
type ProgressUpdate struct {
	FoundDelta      int
	CommittedDelta  int
	DiscardedDelta  int
	FailedDelta     int
	ResizedDelta    int
	BytesSavedDelta int64
}
