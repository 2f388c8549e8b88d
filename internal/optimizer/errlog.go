package optimizer

import (
	"fmt"
	"os"
	"sync"
)

// ErrorLog is the run-scoped failure record: truncated when opened, one
// "<path> - <reason>" line per failure, append-only, never read back.
type ErrorLog struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewErrorLog opens (and truncates) the log at path.
func NewErrorLog(path string) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &ErrorLog{file: f, path: path}, nil
}

// Append writes one failure line. Writes are serialized so lines are
// never interleaved even if callers ever stop being single-threaded.
func (l *ErrorLog) Append(path, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.file, "%s - %s\n", path, reason)
}

// Path returns where the log lives, for the end-of-run summary.
func (l *ErrorLog) Path() string {
	return l.path
}

// Close flushes and closes the underlying file.
func (l *ErrorLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
