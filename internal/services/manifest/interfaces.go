package manifest

import (
	"context"

	"github.com/killallgit/clipset/internal/models"
)

// Store is the part of the record store the builder reads
type Store interface {
	AllClipRequests(ctx context.Context) ([]models.ClipRequest, error)
}

// Builder produces the training and evaluation manifests
type Builder interface {
	// Build runs a processing pass, then splits every clip present on disk
	// into training and evaluation sets and writes both manifest files.
	Build(ctx context.Context) (*models.Manifest, error)
}
