package optimizer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"squish/pkg/imgutil"
)

// Scratch file naming: "<dir>/.squish-<uuid>.tmp". The suffix sits
// outside the image extension allow-set, so an orphaned scratch from an
// aborted run can never be mistaken for a source image.
const (
	scratchPrefix = ".squish-"
	scratchSuffix = ".tmp"
)

// Discover walks root and returns the worklist: every regular file
// whose extension is in the raster allow-set, in traversal order, each
// exactly once. Failure to read the root at all is fatal; an unreadable
// entry deeper in the tree is skipped silently.
func Discover(root string) ([]Job, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, err
	}

	var jobs []Job
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if isScratch(filepath.Base(path)) {
			return nil
		}
		if !imgutil.AllowedExt(path) {
			return nil
		}

		display, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			display = path
		}
		jobs = append(jobs, Job{Path: path, Display: display})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// SweepScratch deletes scratch files orphaned by an aborted previous
// run. Best effort: an entry that cannot be removed is left alone.
func SweepScratch(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if isScratch(filepath.Base(path)) {
			_ = os.Remove(path)
		}
		return nil
	})
}

func isScratch(name string) bool {
	return strings.HasPrefix(name, scratchPrefix) && strings.HasSuffix(name, scratchSuffix)
}
