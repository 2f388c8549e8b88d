package optimizer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestMeasurePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.png")
	writePNG(t, path, 30, 20)

	m, err := Measure(path)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if m.Width != 30 || m.Height != 20 {
		t.Errorf("dimensions = %dx%d, want 30x20", m.Width, m.Height)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.ByteSize != info.Size() {
		t.Errorf("ByteSize = %d, want %d", m.ByteSize, info.Size())
	}
}

func TestMeasureCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("this is not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Measure(path)
	if !errors.Is(err, ErrUnreadableDimensions) {
		t.Fatalf("err = %v, want ErrUnreadableDimensions", err)
	}
}

func TestMeasureContentMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "masquerade.jpg")
	if err := os.WriteFile(path, encodePNG(t, 10, 10), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Measure(path)
	if !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("err = %v, want ErrContentMismatch", err)
	}
}

func TestMeasureMissingFile(t *testing.T) {
	if _, err := Measure(filepath.Join(t.TempDir(), "gone.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMeasureSwapsQuarterTurnedJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rotated.jpg")
	writeJPEGWithOrientation(t, path, 40, 20, 6)

	m, err := Measure(path)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if m.Width != 20 || m.Height != 40 {
		t.Errorf("dimensions = %dx%d, want 20x40 (orientation 6 swaps axes)", m.Width, m.Height)
	}
}

func TestMeasureKeepsUprightJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upright.jpg")
	writeJPEGWithOrientation(t, path, 40, 20, 1)

	m, err := Measure(path)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if m.Width != 40 || m.Height != 20 {
		t.Errorf("dimensions = %dx%d, want 40x20", m.Width, m.Height)
	}
}

// --- fixtures ---

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.WriteFile(path, encodePNG(t, w, h), 0o644); err != nil {
		t.Fatal(err)
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8(x ^ y), A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeJPEGWithOrientation encodes a real JPEG and splices an APP1 EXIF
// segment carrying the given orientation right after SOI.
func writeJPEGWithOrientation(t *testing.T, path string, w, h int, orientation uint16) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 5), B: 0x40, A: 0xff})
		}
	}
	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatal(err)
	}
	data := encoded.Bytes()
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Fatal("encoder did not produce a JPEG")
	}

	payload := append([]byte("Exif\x00\x00"), buildOrientationTIFF(orientation)...)

	var out bytes.Buffer
	out.Write(data[:2])
	out.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(data[2:])

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// buildOrientationTIFF emits a minimal little-endian TIFF with a single
// IFD entry: tag 0x0112 (Orientation), type SHORT, count 1.
func buildOrientationTIFF(orientation uint16) []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, orientation)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	return tiff.Bytes()
}
