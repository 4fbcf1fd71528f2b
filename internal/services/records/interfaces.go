package records

import (
	"context"

	"github.com/killallgit/clipset/internal/models"
)

// Repository is the persistent store of clip requests and engagement markers
type Repository interface {
	// PurgeAll deletes every clip request and reports how many were removed.
	// Markers and files on disk are left alone.
	PurgeAll(ctx context.Context) (int64, error)

	// InsertClipRequest stores a new clip request with a fresh id
	InsertClipRequest(ctx context.Context, videoID string, start, end float64, labels []string) (*models.ClipRequest, error)

	// DistinctVideoIDs lists every video with at least one clip request, sorted
	DistinctVideoIDs(ctx context.Context) ([]string, error)

	// ClipRequestsFor lists a video's clip requests ordered by id
	ClipRequestsFor(ctx context.Context, videoID string) ([]models.ClipRequest, error)

	// AllClipRequests lists every clip request ordered by id
	AllClipRequests(ctx context.Context) ([]models.ClipRequest, error)

	// MarkersFor lists a video's engagement markers ordered by offset
	MarkersFor(ctx context.Context, videoID string) ([]models.EngagementMarker, error)

	// UpsertMarkerIgnoreDuplicate stores a marker unless one already exists at that offset
	UpsertMarkerIgnoreDuplicate(ctx context.Context, marker models.EngagementMarker) error

	// UpsertMarkers stores markers in one transaction, ignoring existing offsets
	UpsertMarkers(ctx context.Context, markers []models.EngagementMarker) error
}

// ExportRequest is an unvalidated clip request as submitted by a client.
// Start and End are pointers so an absent field is distinguishable from 0.
type ExportRequest struct {
	VideoID string   `json:"videoId"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Labels  []string `json:"audioSets"`
}

// Service validates and records clip requests
type Service interface {
	// Export validates req and stores it
	Export(ctx context.Context, req ExportRequest) (*models.ClipRequest, error)

	// Purge removes every clip request
	Purge(ctx context.Context) (int64, error)
}
