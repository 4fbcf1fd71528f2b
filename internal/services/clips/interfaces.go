package clips

import (
	"context"

	"github.com/killallgit/clipset/pkg/ffmpeg"
)

// Trimmer cuts a time range out of a source file
type Trimmer interface {
	Trim(ctx context.Context, req ffmpeg.TrimRequest) error
}

// Extractor produces clip files on demand
type Extractor interface {
	// EnsureClip makes sure outputPath holds [start, end) of sourcePath.
	// extracted is false when the file was already there.
	EnsureClip(ctx context.Context, sourcePath string, start, end float64, outputPath string) (path string, extracted bool, err error)
}
