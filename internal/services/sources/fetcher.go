package sources

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/models"
	"github.com/killallgit/clipset/internal/services/clips"
	"github.com/killallgit/clipset/pkg/download"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// lockRetryDelay is how often a blocked caller re-tries another process's download lock
const lockRetryDelay = 250 * time.Millisecond

// fetcher implements Fetcher
type fetcher struct {
	layout     clips.Layout
	downloader Downloader
	metrics    *metrics.PipelineMetrics
	group      singleflight.Group
}

// NewFetcher creates a source fetcher writing into layout.AudioDir. m may be nil.
func NewFetcher(layout clips.Layout, downloader Downloader, m *metrics.PipelineMetrics) (Fetcher, error) {
	if err := os.MkdirAll(layout.AudioDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &fetcher{
		layout:     layout,
		downloader: downloader,
		metrics:    m,
	}, nil
}

// EnsureSource downloads a video's audio unless it is already present.
// Callers in this process share one download per video; other processes are
// kept out by a lock file next to the audio.
//
// ctx only decides whether a download starts and how long this caller waits
// for it. A started download runs to completion even if every waiting caller
// leaves.
func (f *fetcher) EnsureSource(ctx context.Context, videoID string) (string, bool, error) {
	if !models.ValidVideoID(videoID) {
		return "", false, apperrors.ValidationError("videoId", fmt.Sprintf("%q is not a valid video id", videoID))
	}

	path := f.layout.SourcePath(videoID)
	if fileExists(path) {
		f.metrics.RecordSourceFetch(metrics.ResultCached, 0)
		return path, false, nil
	}

	if err := ctx.Err(); err != nil {
		return "", false, apperrors.Wrap(err, apperrors.ErrCodeCancelled, "source download not started").
			WithDetail("video_id", videoID)
	}

	var leader bool
	detached := context.WithoutCancel(ctx)
	ch := f.group.DoChan(videoID, func() (interface{}, error) {
		leader = true
		return f.fetch(detached, videoID, path)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		return path, leader && res.Val.(bool), nil
	case <-ctx.Done():
		return "", false, apperrors.Wrap(ctx.Err(), apperrors.ErrCodeCancelled, "stopped waiting for source download").
			WithDetail("video_id", videoID)
	}
}

func (f *fetcher) fetch(ctx context.Context, videoID, path string) (bool, error) {
	lock := flock.New(filepath.Join(f.layout.AudioDir, "."+videoID+".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return false, apperrors.StorageError("acquire download lock", err).WithDetail("video_id", videoID)
	}
	if !locked {
		return false, apperrors.New(apperrors.ErrCodeStorage, "download lock not acquired").WithDetail("video_id", videoID)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Printf("[WARN] Failed to release download lock for %s: %v", videoID, err)
		}
	}()

	// Another process may have finished while we waited
	if fileExists(path) {
		f.metrics.RecordSourceFetch(metrics.ResultCached, 0)
		return false, nil
	}

	partPath := path + ".part"
	_ = os.Remove(partPath)

	log.Printf("[INFO] Downloading source audio for %s", videoID)
	started := time.Now()

	if err := f.downloader.Download(ctx, download.VideoURL(videoID), partPath, download.AudioOnlyM4A); err != nil {
		_ = os.Remove(partPath)
		f.metrics.RecordSourceFetch(metrics.ResultFailed, time.Since(started))
		return false, apperrors.ExternalToolError("yt-dlp", err).WithDetail("video_id", videoID)
	}

	if err := os.Rename(partPath, path); err != nil {
		_ = os.Remove(partPath)
		f.metrics.RecordSourceFetch(metrics.ResultFailed, time.Since(started))
		return false, apperrors.StorageError("publish source audio", err).WithDetail("video_id", videoID)
	}

	f.metrics.RecordSourceFetch(metrics.ResultFetched, time.Since(started))
	log.Printf("[INFO] Downloaded source audio for %s in %s", videoID, time.Since(started).Round(time.Millisecond))
	return true, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
