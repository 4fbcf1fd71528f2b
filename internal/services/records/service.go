package records

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/killallgit/clipset/internal/models"
	apperrors "github.com/killallgit/clipset/pkg/errors"
)

// service implements Service
type service struct {
	repo Repository
}

// NewService creates a new clip request service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Export validates and stores a clip request
func (s *service) Export(ctx context.Context, req ExportRequest) (*models.ClipRequest, error) {
	labels, err := Validate(req)
	if err != nil {
		return nil, err
	}

	clip, err := s.repo.InsertClipRequest(ctx, req.VideoID, *req.Start, *req.End, labels)
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Recorded clip request %s [%.3f, %.3f) labels=%s", clip.CompositeID(), clip.Start, clip.End, clip.LabelSet)
	return clip, nil
}

// Purge removes every clip request
func (s *service) Purge(ctx context.Context) (int64, error) {
	removed, err := s.repo.PurgeAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] Purged %d clip request(s)", removed)
	return removed, nil
}

// Validate checks a clip request and returns its normalized labels.
// Violations are reported as validation AppErrors wrapping the package sentinels.
func Validate(req ExportRequest) ([]string, error) {
	if !models.ValidVideoID(req.VideoID) {
		return nil, apperrors.Wrap(ErrInvalidVideoID, apperrors.ErrCodeValidation,
			fmt.Sprintf("videoId %q must be 1-64 characters of [A-Za-z0-9_-]", req.VideoID)).
			WithDetail("field", "videoId")
	}

	if req.Start == nil {
		return nil, missingField("start")
	}
	if req.End == nil {
		return nil, missingField("end")
	}

	start, end := *req.Start, *req.End
	if math.IsNaN(start) || math.IsInf(start, 0) || start < 0 {
		return nil, apperrors.Wrap(ErrInvalidRange, apperrors.ErrCodeValidation, "start must be a non-negative number").
			WithDetail("field", "start")
	}
	if math.IsNaN(end) || math.IsInf(end, 0) || end <= start {
		return nil, apperrors.Wrap(ErrInvalidRange, apperrors.ErrCodeValidation, "end must be greater than start").
			WithDetail("field", "end")
	}

	if len(req.Labels) == 0 {
		return nil, apperrors.Wrap(ErrInvalidLabels, apperrors.ErrCodeValidation, "at least one label is required").
			WithDetail("field", "audioSets")
	}

	labels := make([]string, 0, len(req.Labels))
	for _, l := range req.Labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, apperrors.Wrap(ErrInvalidLabels, apperrors.ErrCodeValidation, "labels must not be blank").
				WithDetail("field", "audioSets")
		}
		if strings.Contains(l, models.LabelSeparator) {
			return nil, apperrors.Wrap(ErrInvalidLabels, apperrors.ErrCodeValidation,
				fmt.Sprintf("label %q must not contain %q", l, models.LabelSeparator)).
				WithDetail("field", "audioSets")
		}
		labels = append(labels, l)
	}

	return labels, nil
}

func missingField(field string) error {
	return apperrors.Wrap(ErrMissingField, apperrors.ErrCodeValidation, field+" is required").
		WithDetail("field", field)
}
