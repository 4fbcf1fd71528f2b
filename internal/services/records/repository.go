package records

import (
	"context"

	"github.com/killallgit/clipset/internal/models"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// repository implements Repository
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new record store backed by db
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// PurgeAll deletes every clip request
func (r *repository) PurgeAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.ClipRequest{})
	if result.Error != nil {
		return 0, apperrors.StorageError("purge", result.Error)
	}
	return result.RowsAffected, nil
}

// InsertClipRequest stores a new clip request
func (r *repository) InsertClipRequest(ctx context.Context, videoID string, start, end float64, labels []string) (*models.ClipRequest, error) {
	req := &models.ClipRequest{
		VideoID:  videoID,
		Start:    start,
		End:      end,
		LabelSet: models.JoinLabels(labels),
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, apperrors.StorageError("insert clip request", err)
	}
	return req, nil
}

// DistinctVideoIDs lists every referenced video, sorted
func (r *repository) DistinctVideoIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.ClipRequest{}).
		Distinct("video_id").
		Order("video_id").
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, apperrors.StorageError("list video ids", err)
	}
	return ids, nil
}

// ClipRequestsFor lists a video's clip requests
func (r *repository) ClipRequestsFor(ctx context.Context, videoID string) ([]models.ClipRequest, error) {
	var reqs []models.ClipRequest
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("id").
		Find(&reqs).Error
	if err != nil {
		return nil, apperrors.StorageError("list clip requests", err).WithDetail("video_id", videoID)
	}
	return reqs, nil
}

// AllClipRequests lists every clip request
func (r *repository) AllClipRequests(ctx context.Context) ([]models.ClipRequest, error) {
	var reqs []models.ClipRequest
	if err := r.db.WithContext(ctx).Order("id").Find(&reqs).Error; err != nil {
		return nil, apperrors.StorageError("list clip requests", err)
	}
	return reqs, nil
}

// MarkersFor lists a video's engagement markers
func (r *repository) MarkersFor(ctx context.Context, videoID string) ([]models.EngagementMarker, error) {
	var markers []models.EngagementMarker
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("start_millis").
		Find(&markers).Error
	if err != nil {
		return nil, apperrors.StorageError("list markers", err).WithDetail("video_id", videoID)
	}
	return markers, nil
}

// UpsertMarkerIgnoreDuplicate stores a marker, keeping any existing one at the same offset
func (r *repository) UpsertMarkerIgnoreDuplicate(ctx context.Context, marker models.EngagementMarker) error {
	marker.ID = 0
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&marker).Error
	if err != nil {
		return apperrors.StorageError("insert marker", err).WithDetail("video_id", marker.VideoID)
	}
	return nil
}

// UpsertMarkers stores markers atomically, keeping existing offsets
func (r *repository) UpsertMarkers(ctx context.Context, markers []models.EngagementMarker) error {
	if len(markers) == 0 {
		return nil
	}

	rows := make([]models.EngagementMarker, len(markers))
	for i, m := range markers {
		m.ID = 0
		rows[i] = m
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(&rows, 200).Error
	})
	if err != nil {
		return apperrors.StorageError("insert markers", err).WithDetail("count", len(markers))
	}
	return nil
}
