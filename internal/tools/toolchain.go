// Package tools wraps the external codec binaries the optimizer shells
// out to: ImageMagick's mogrify for resizing, and jpegoptim, optipng,
// and gifsicle for format-specific recompression. The pipeline only
// depends on the Toolchain interface so tests can substitute fakes.
package tools

import (
	"context"
	"fmt"
)

// Toolchain is the set of external capabilities the pipeline invokes.
// Every method mutates the file at path in place and reports failure
// through its error; the pipeline only ever passes scratch copies.
type Toolchain interface {
	// Resize shrinks the image so neither dimension exceeds maxDimension,
	// preserving aspect ratio. Images already within bounds are untouched.
	Resize(ctx context.Context, path string, maxDimension int) error

	// CompressJPEG recompresses a JPEG with the given quality ceiling
	// and strips embedded metadata.
	CompressJPEG(ctx context.Context, path string, quality int) error

	// CompressPNG losslessly recompresses a PNG at maximum effort.
	CompressPNG(ctx context.Context, path string) error

	// CompressGIF losslessly recompresses a GIF at maximum optimization.
	CompressGIF(ctx context.Context, path string) error
}

// External is the production Toolchain, backed by the binaries named in
// binMogrify and friends.
type External struct{}

// NewExternal returns a Toolchain that invokes the real codec binaries.
// Callers should run CheckDeps first; a missing binary surfaces here
// only as a per-file failure.
func NewExternal() *External {
	return &External{}
}

// Resize calls mogrify with a shrink-only geometry. The trailing ">"
// tells ImageMagick to only ever downscale, so images within bounds
// pass through byte-identical apart from recoding.
func (e *External) Resize(ctx context.Context, path string, maxDimension int) error {
	geometry := fmt.Sprintf("%dx%d>", maxDimension, maxDimension)
	return runTool(ctx, binMogrify, "-resize", geometry, path)
}

func (e *External) CompressJPEG(ctx context.Context, path string, quality int) error {
	return runTool(ctx, binJpegoptim, fmt.Sprintf("-m%d", quality), "--strip-all", "-q", path)
}

func (e *External) CompressPNG(ctx context.Context, path string) error {
	return runTool(ctx, binOptipng, "-o7", "-quiet", path)
}

func (e *External) CompressGIF(ctx context.Context, path string) error {
	return runTool(ctx, binGifsicle, "-O3", "-b", path)
}
