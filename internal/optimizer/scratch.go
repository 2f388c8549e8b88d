package optimizer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// newScratchPath returns a distinct scratch name in the same directory
// as the original, so the eventual commit is a same-filesystem rename.
// The uuid keeps concurrently processed items from colliding.
func newScratchPath(original string) string {
	dir := filepath.Dir(original)
	return filepath.Join(dir, scratchPrefix+uuid.NewString()+scratchSuffix)
}

// copyToScratch copies the original's bytes and mode to a fresh scratch
// file and returns its path. The caller owns the scratch and must
// either rename it over the original or remove it.
func copyToScratch(original string) (string, error) {
	src, err := os.Open(original)
	if err != nil {
		return "", err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", err
	}

	scratch := newScratchPath(original)
	dst, err := os.OpenFile(scratch, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(scratch)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(scratch)
		return "", err
	}
	return scratch, nil
}

// commitScratch atomically replaces the original with the scratch via
// rename. Both live in the same directory, so there is no partial-write
// window and no cross-filesystem copy.
func commitScratch(scratch, original string) error {
	return os.Rename(scratch, original)
}
