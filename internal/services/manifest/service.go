package manifest

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/models"
	"github.com/killallgit/clipset/internal/services/clips"
	"github.com/killallgit/clipset/internal/services/pipeline"
	apperrors "github.com/killallgit/clipset/pkg/errors"
)

const (
	TrainFile = "training.json"
	EvalFile  = "eval.json"

	DefaultEvalRatio = 0.1
)

// Options configures manifest output
type Options struct {
	Dir        string  // Directory receiving training.json and eval.json
	Seed       uint64  // Shuffle seed
	SeedRandom bool    // Ignore Seed and shuffle with fresh entropy
	EvalRatio  float64 // Share of entries held out for evaluation; 0 means DefaultEvalRatio
	NoEval     bool    // Hold nothing out; eval.json is written empty
}

// service implements Builder
type service struct {
	store     Store
	processor pipeline.Processor
	layout    clips.Layout
	options   Options
	metrics   *metrics.PipelineMetrics
}

// NewService creates a manifest builder. m may be nil.
func NewService(store Store, processor pipeline.Processor, layout clips.Layout, options Options, m *metrics.PipelineMetrics) Builder {
	switch {
	case options.NoEval:
		options.EvalRatio = 0
	case options.EvalRatio <= 0 || options.EvalRatio >= 1:
		options.EvalRatio = DefaultEvalRatio
	}
	return &service{
		store:     store,
		processor: processor,
		layout:    layout,
		options:   options,
		metrics:   m,
	}
}

// Build processes every recorded request and writes the manifests
func (s *service) Build(ctx context.Context) (*models.Manifest, error) {
	process, err := s.processor.ProcessAll(ctx)
	if err != nil {
		return nil, err
	}

	reqs, err := s.store.AllClipRequests(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ManifestEntry, 0, len(reqs))
	for _, req := range reqs {
		path := s.layout.ClipPath(req)
		if !fileExists(path) {
			log.Printf("[DEBUG] Clip %s missing, left out of manifest", req.CompositeID())
			continue
		}
		entries = append(entries, models.ManifestEntry{
			VideoID: req.CompositeID(),
			Wav:     path,
			Labels:  req.LabelSet,
		})
	}

	seed := s.options.Seed
	if s.options.SeedRandom {
		seed = rand.Uint64()
	}
	Shuffle(entries, seed)
	train, eval := Partition(entries, s.options.EvalRatio)

	if err := os.MkdirAll(s.options.Dir, 0755); err != nil {
		return nil, apperrors.StorageError("create manifest directory", err).WithDetail("path", s.options.Dir)
	}

	manifest := &models.Manifest{
		Train:     train,
		Eval:      eval,
		TrainPath: filepath.Join(s.options.Dir, TrainFile),
		EvalPath:  filepath.Join(s.options.Dir, EvalFile),
		Seed:      seed,
		Process:   process,
	}
	if err := writeManifest(manifest.TrainPath, train); err != nil {
		return nil, err
	}
	if err := writeManifest(manifest.EvalPath, eval); err != nil {
		return nil, err
	}

	s.metrics.SetManifestEntries(len(train), len(eval))
	log.Printf("[INFO] Wrote manifests: %d training, %d eval (seed %d)", len(train), len(eval), seed)

	return manifest, nil
}

// Shuffle permutes entries in place. The same seed always gives the same order.
func Shuffle(entries []models.ManifestEntry, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}

// Partition holds out the first floor(ratio*N) entries for evaluation and
// returns the rest as the training set. Neither result is nil.
func Partition(entries []models.ManifestEntry, ratio float64) (train, eval []models.ManifestEntry) {
	n := len(entries)
	// epsilon absorbs float error such as 0.1*30 landing just under 3
	evalCount := int(math.Floor(ratio*float64(n) + 1e-9))
	if evalCount > n {
		evalCount = n
	}
	if evalCount < 0 {
		evalCount = 0
	}

	eval = append([]models.ManifestEntry{}, entries[:evalCount]...)
	train = append([]models.ManifestEntry{}, entries[evalCount:]...)
	return train, eval
}

func writeManifest(path string, entries []models.ManifestEntry) error {
	data, err := json.MarshalIndent(models.ManifestFile{Data: entries}, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode manifest")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.StorageError("create manifest", err).WithDetail("path", path)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.StorageError("write manifest", err).WithDetail("path", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.StorageError("write manifest", err).WithDetail("path", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperrors.StorageError("publish manifest", err).WithDetail("path", path)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
