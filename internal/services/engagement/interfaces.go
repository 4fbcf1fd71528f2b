package engagement

import (
	"context"

	"github.com/killallgit/clipset/internal/models"
	"github.com/killallgit/clipset/pkg/mostreplayed"
)

// Provider supplies engagement markers for a video
type Provider interface {
	Fetch(ctx context.Context, videoID string) ([]mostreplayed.Marker, error)
}

// Store is the part of the record store holding engagement markers
type Store interface {
	MarkersFor(ctx context.Context, videoID string) ([]models.EngagementMarker, error)
	UpsertMarkers(ctx context.Context, markers []models.EngagementMarker) error
}

// Cache serves engagement markers from the record store, asking the
// provider only for videos it has never stored markers for.
//
// Empty provider answers are not remembered: a video without markers is
// asked for again on every lookup, so data published later is picked up.
type Cache interface {
	GetMarkers(ctx context.Context, videoID string) ([]models.EngagementMarker, error)
}
