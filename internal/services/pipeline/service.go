package pipeline

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/models"
	"github.com/killallgit/clipset/internal/services/clips"
	"github.com/killallgit/clipset/internal/services/sources"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Options configures a processing pass
type Options struct {
	Workers int // Videos processed concurrently
}

// service implements Processor
type service struct {
	store     Store
	fetcher   sources.Fetcher
	extractor clips.Extractor
	layout    clips.Layout
	options   Options
	metrics   *metrics.PipelineMetrics
}

// NewService creates a new processing pipeline. m may be nil.
func NewService(store Store, fetcher sources.Fetcher, extractor clips.Extractor, layout clips.Layout, options Options, m *metrics.PipelineMetrics) Processor {
	if options.Workers <= 0 {
		options.Workers = 1
	}
	return &service{
		store:     store,
		fetcher:   fetcher,
		extractor: extractor,
		layout:    layout,
		options:   options,
		metrics:   m,
	}
}

// run collects the outcome of one pass across worker goroutines
type run struct {
	mu     sync.Mutex
	result *models.ProcessResult
}

func (r *run) succeed(status models.ArtifactStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Succeeded = append(r.result.Succeeded, status)
	switch {
	case status.Kind == models.ArtifactSource && status.Cached:
		r.result.SourcesCached++
	case status.Kind == models.ArtifactSource:
		r.result.SourcesFetched++
	case status.Cached:
		r.result.ClipsCached++
	default:
		r.result.ClipsExtracted++
	}
}

func (r *run) fail(kind models.ArtifactKind, id string, err error, skippedClips int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Failed = append(r.result.Failed, models.Failure{
		Kind:      kind,
		ID:        id,
		ErrorKind: string(apperrors.GetCode(err)),
		Message:   err.Error(),
	})
	r.result.ClipsSkipped += skippedClips
}

// ProcessAll runs one processing pass
func (s *service) ProcessAll(ctx context.Context) (*models.ProcessResult, error) {
	videoIDs, err := s.store.DistinctVideoIDs(ctx)
	if err != nil {
		s.metrics.RecordProcessRun("error")
		return nil, err
	}

	r := &run{result: &models.ProcessResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Succeeded: []models.ArtifactStatus{},
		Failed:    []models.Failure{},
	}}

	log.Printf("[INFO] Processing run %s: %d video(s), %d worker(s)", r.result.RunID, len(videoIDs), s.options.Workers)

	var g errgroup.Group
	g.SetLimit(s.options.Workers)

	for i, videoID := range videoIDs {
		if ctx.Err() != nil {
			for _, skipped := range videoIDs[i:] {
				r.fail(models.ArtifactSource, skipped, cancelled(ctx), 0)
			}
			break
		}
		videoID := videoID
		g.Go(func() error {
			return s.processVideo(ctx, videoID, r)
		})
	}
	waitErr := g.Wait()

	result := r.result
	sortResult(result)
	result.Finish()

	outcome := "complete"
	switch {
	case waitErr != nil:
		outcome = "error"
	case result.HasFailures():
		outcome = "partial"
	}
	s.metrics.RecordProcessRun(outcome)

	log.Printf("[INFO] Processing run %s finished in %dms: sources fetched=%d cached=%d, clips extracted=%d cached=%d skipped=%d, failures=%d",
		result.RunID, result.DurationMillis, result.SourcesFetched, result.SourcesCached,
		result.ClipsExtracted, result.ClipsCached, result.ClipsSkipped, len(result.Failed))

	if waitErr != nil {
		log.Printf("[ERROR] Processing run %s aborted: %v", result.RunID, waitErr)
		return result, waitErr
	}
	return result, ctx.Err()
}

// processVideo ensures one video's source and then each of its clips in id
// order. Only a record store failure is returned; artifact failures go to r.
func (s *service) processVideo(ctx context.Context, videoID string, r *run) error {
	if ctx.Err() != nil {
		r.fail(models.ArtifactSource, videoID, cancelled(ctx), 0)
		return nil
	}

	reqs, err := s.store.ClipRequestsFor(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			r.fail(models.ArtifactSource, videoID, cancelled(ctx), 0)
			return nil
		}
		return err
	}

	sourcePath, fetched, err := s.fetcher.EnsureSource(ctx, videoID)
	if err != nil {
		log.Printf("[ERROR] Source for %s unavailable, skipping %d clip(s): %v", videoID, len(reqs), err)
		r.fail(models.ArtifactSource, videoID, err, len(reqs))
		return nil
	}
	r.succeed(models.ArtifactStatus{Kind: models.ArtifactSource, ID: videoID, Path: sourcePath, Cached: !fetched})

	for _, req := range reqs {
		if ctx.Err() != nil {
			r.fail(models.ArtifactClip, req.CompositeID(), cancelled(ctx), 0)
			continue
		}

		clipPath, extracted, err := s.extractor.EnsureClip(ctx, sourcePath, req.Start, req.End, s.layout.ClipPath(req))
		if err != nil {
			log.Printf("[ERROR] Clip %s failed: %v", req.CompositeID(), err)
			r.fail(models.ArtifactClip, req.CompositeID(), err, 0)
			continue
		}
		r.succeed(models.ArtifactStatus{Kind: models.ArtifactClip, ID: req.CompositeID(), Path: clipPath, Cached: !extracted})
	}
	return nil
}

func cancelled(ctx context.Context) error {
	return apperrors.Wrap(ctx.Err(), apperrors.ErrCodeCancelled, "processing cancelled")
}

func sortResult(result *models.ProcessResult) {
	sort.SliceStable(result.Succeeded, func(i, j int) bool {
		a, b := result.Succeeded[i], result.Succeeded[j]
		if a.Kind != b.Kind {
			return a.Kind == models.ArtifactSource
		}
		return a.ID < b.ID
	})
	sort.SliceStable(result.Failed, func(i, j int) bool {
		a, b := result.Failed[i], result.Failed[j]
		if a.Kind != b.Kind {
			return a.Kind == models.ArtifactSource
		}
		return a.ID < b.ID
	})
}
