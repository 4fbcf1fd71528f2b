package clips

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/clipset/internal/metrics"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"github.com/killallgit/clipset/pkg/ffmpeg"
	"golang.org/x/sync/singleflight"
)

// extractor implements Extractor
type extractor struct {
	trimmer Trimmer
	metrics *metrics.PipelineMetrics
	group   singleflight.Group
}

// NewExtractor creates a clip extractor. m may be nil.
func NewExtractor(trimmer Trimmer, m *metrics.PipelineMetrics) Extractor {
	return &extractor{
		trimmer: trimmer,
		metrics: m,
	}
}

// EnsureClip extracts a clip unless it already exists. Concurrent calls for
// the same output share one trim. A partial file is never left at outputPath.
//
// ctx only decides whether a trim starts and how long this caller waits for
// it. A started trim runs to completion even if every waiting caller leaves.
func (e *extractor) EnsureClip(ctx context.Context, sourcePath string, start, end float64, outputPath string) (string, bool, error) {
	if fileExists(outputPath) {
		e.metrics.RecordClipExtraction(metrics.ResultCached, 0)
		return outputPath, false, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, apperrors.Wrap(err, apperrors.ErrCodeCancelled, "clip extraction not started")
	}

	var leader bool
	detached := context.WithoutCancel(ctx)
	ch := e.group.DoChan(outputPath, func() (interface{}, error) {
		leader = true
		return e.extract(detached, sourcePath, start, end, outputPath)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		return outputPath, leader && res.Val.(bool), nil
	case <-ctx.Done():
		return "", false, apperrors.Wrap(ctx.Err(), apperrors.ErrCodeCancelled, "stopped waiting for clip extraction").
			WithDetail("output", outputPath)
	}
}

func (e *extractor) extract(ctx context.Context, sourcePath string, start, end float64, outputPath string) (bool, error) {
	if fileExists(outputPath) {
		e.metrics.RecordClipExtraction(metrics.ResultCached, 0)
		return false, nil
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, apperrors.StorageError("create clips directory", err).WithDetail("path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return false, apperrors.StorageError("create temp clip", err).WithDetail("path", outputPath)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	started := time.Now()
	err = e.trimmer.Trim(ctx, ffmpeg.TrimRequest{
		Input:  sourcePath,
		Output: tmpPath,
		Start:  start,
		End:    end,
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		e.metrics.RecordClipExtraction(metrics.ResultFailed, time.Since(started))
		return false, apperrors.ExternalToolError("ffmpeg", err).
			WithDetail("source", sourcePath).
			WithDetail("output", outputPath)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		e.metrics.RecordClipExtraction(metrics.ResultFailed, time.Since(started))
		return false, apperrors.StorageError("publish clip", err).WithDetail("path", outputPath)
	}

	e.metrics.RecordClipExtraction(metrics.ResultExtracted, time.Since(started))
	log.Printf("[DEBUG] Extracted [%s, %s) of %s to %s", fmtSeconds(start), fmtSeconds(end), sourcePath, outputPath)
	return true, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func fmtSeconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
