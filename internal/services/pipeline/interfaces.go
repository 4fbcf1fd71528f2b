package pipeline

import (
	"context"

	"github.com/killallgit/clipset/internal/models"
)

// Store is the part of the record store a processing pass reads
type Store interface {
	DistinctVideoIDs(ctx context.Context) ([]string, error)
	ClipRequestsFor(ctx context.Context, videoID string) ([]models.ClipRequest, error)
}

// Processor materializes every recorded clip request
type Processor interface {
	// ProcessAll ensures source audio for every referenced video and every
	// clip file. Per-artifact failures are reported in the result. A failure
	// to read the record store fails the call; the result built so far is
	// still returned alongside the error.
	ProcessAll(ctx context.Context) (*models.ProcessResult, error)
}
