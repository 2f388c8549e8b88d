package optimizer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	exif "github.com/dsoprea/go-exif/v3"

	"squish/pkg/imgutil"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnreadableDimensions marks files whose pixel dimensions cannot be
// determined (corrupt data, unsupported variant, or a zero dimension).
var ErrUnreadableDimensions = errors.New("unreadable dimensions")

// ErrContentMismatch marks files whose magic bytes identify a different
// format than their extension. The compressor dispatches on extension,
// so feeding such a file to a codec would corrupt it.
var ErrContentMismatch = errors.New("content does not match extension")

// Measure probes a file: byte size from filesystem metadata, pixel
// dimensions by decoding the header. A recognizable signature that
// contradicts the extension fails the item before any codec touches
// it. For JPEG and TIFF files an EXIF orientation that rotates the
// image a quarter turn swaps the reported width and height, so the
// resize decision sees display geometry.
func Measure(path string) (Measurement, error) {
	m := Measurement{}

	info, err := os.Stat(path)
	if err != nil {
		return m, err
	}
	m.ByteSize = info.Size()

	f, err := os.Open(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	// An unknown signature is left for DecodeConfig to reject; only a
	// positive identification of some other format is a mismatch.
	if sniffed, sniffErr := imgutil.SniffReader(f); sniffErr == nil &&
		sniffed != imgutil.KindUnknown && sniffed != imgutil.KindForPath(path) {
		return m, fmt.Errorf("%w: %s data in a .%s file", ErrContentMismatch, sniffed, imgutil.KindForPath(path))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return m, err
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return m, fmt.Errorf("%w: %v", ErrUnreadableDimensions, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return m, ErrUnreadableDimensions
	}
	m.Width, m.Height = cfg.Width, cfg.Height

	switch imgutil.KindForPath(path) {
	case imgutil.KindJPEG, imgutil.KindTIFF:
		if quarterTurned(f) {
			m.Width, m.Height = m.Height, m.Width
		}
	}

	return m, nil
}

// quarterTurned reports whether the file's EXIF orientation is one of
// the transposed values (5..8), which rotate the raster 90 degrees when
// displayed. Missing or unreadable EXIF means no rotation.
func quarterTurned(rs io.ReadSeeker) bool {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return false
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		return false
	}

	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		if v, ok := tag.Value.([]uint16); ok && len(v) > 0 {
			return v[0] >= 5 && v[0] <= 8
		}
	}
	return false
}
