package engagement

import (
	"context"
	"errors"
	"log"

	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/models"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"github.com/killallgit/clipset/pkg/mostreplayed"
	"golang.org/x/sync/singleflight"
)

const providerName = "mostreplayed"

// service implements Cache
type service struct {
	store    Store
	provider Provider
	metrics  *metrics.PipelineMetrics
	group    singleflight.Group
}

// NewService creates an engagement cache. m may be nil.
func NewService(store Store, provider Provider, m *metrics.PipelineMetrics) Cache {
	return &service{
		store:    store,
		provider: provider,
		metrics:  m,
	}
}

// GetMarkers returns the stored markers for a video, fetching and storing
// them first if none are stored yet
func (s *service) GetMarkers(ctx context.Context, videoID string) ([]models.EngagementMarker, error) {
	if !models.ValidVideoID(videoID) {
		return nil, apperrors.ValidationError("videoId", "must be a non-empty YouTube video id")
	}

	stored, err := s.store.MarkersFor(ctx, videoID)
	if err != nil {
		s.metrics.RecordEngagementLookup(metrics.ResultError)
		return nil, err
	}
	if len(stored) > 0 {
		s.metrics.RecordEngagementLookup(metrics.ResultHit)
		return stored, nil
	}

	// The shared lookup outlives any one caller, so a caller that goes away
	// does not fail the others waiting on it
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(videoID, func() (interface{}, error) {
		return s.fetch(detached, videoID)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, apperrors.Wrap(ctx.Err(), apperrors.ErrCodeCancelled, "stopped waiting for engagement lookup").
			WithDetail("video_id", videoID)
	}
	if res.Err != nil {
		return nil, res.Err
	}

	markers := res.Val.([]models.EngagementMarker)
	out := make([]models.EngagementMarker, len(markers))
	copy(out, markers)
	return out, nil
}

func (s *service) fetch(ctx context.Context, videoID string) ([]models.EngagementMarker, error) {
	// A flight that just finished may have stored them
	stored, err := s.store.MarkersFor(ctx, videoID)
	if err != nil {
		s.metrics.RecordEngagementLookup(metrics.ResultError)
		return nil, err
	}
	if len(stored) > 0 {
		s.metrics.RecordEngagementLookup(metrics.ResultHit)
		return stored, nil
	}

	fetched, err := s.provider.Fetch(ctx, videoID)
	if errors.Is(err, mostreplayed.ErrNoData) {
		log.Printf("[DEBUG] No engagement data for %s", videoID)
		s.metrics.RecordEngagementLookup(metrics.ResultEmpty)
		return []models.EngagementMarker{}, nil
	}
	if err != nil {
		log.Printf("[WARN] Engagement lookup for %s failed: %v", videoID, err)
		s.metrics.RecordEngagementLookup(metrics.ResultError)
		return nil, apperrors.ExternalServiceError(providerName, err).WithDetail("video_id", videoID)
	}

	markers := make([]models.EngagementMarker, len(fetched))
	for i, m := range fetched {
		markers[i] = models.EngagementMarker{
			VideoID:     videoID,
			StartMillis: m.StartMillis,
			Intensity:   m.Intensity,
		}
	}

	if err := s.store.UpsertMarkers(ctx, markers); err != nil {
		s.metrics.RecordEngagementLookup(metrics.ResultError)
		return nil, err
	}

	s.metrics.RecordEngagementLookup(metrics.ResultMiss)
	log.Printf("[INFO] Stored %d engagement marker(s) for %s", len(markers), videoID)
	return markers, nil
}
