package cmd

import (
	"fmt"
	"log"

	"github.com/killallgit/clipset/api/types"
	"github.com/killallgit/clipset/internal/database"
	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/services/cleanup"
	"github.com/killallgit/clipset/internal/services/clips"
	"github.com/killallgit/clipset/internal/services/engagement"
	"github.com/killallgit/clipset/internal/services/manifest"
	"github.com/killallgit/clipset/internal/services/pipeline"
	"github.com/killallgit/clipset/internal/services/records"
	"github.com/killallgit/clipset/internal/services/sources"
	"github.com/killallgit/clipset/pkg/config"
	"github.com/killallgit/clipset/pkg/download"
	"github.com/killallgit/clipset/pkg/ffmpeg"
	"github.com/killallgit/clipset/pkg/mostreplayed"
	"github.com/prometheus/client_golang/prometheus"
)

// tools are the external collaborators. Nil fields are built from config.
type tools struct {
	downloader sources.Downloader
	trimmer    clips.Trimmer
	provider   engagement.Provider
}

// app is every service a command needs, wired from one Config
type app struct {
	cfg        *config.Config
	db         *database.DB
	registry   *prometheus.Registry
	metrics    *metrics.PipelineMetrics
	layout     clips.Layout
	records    records.Service
	processor  pipeline.Processor
	manifest   manifest.Builder
	engagement engagement.Cache
	sweeper    *cleanup.Service
}

func newApp(cfg *config.Config, t tools) (*app, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.NewPipelineMetrics(registry)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	if t.downloader == nil {
		t.downloader = download.NewDownloader(download.DownloadOptions{
			ExecutablePath: cfg.Processing.YtdlpPath,
			Timeout:        cfg.Processing.ToolTimeout,
		})
	}
	if t.trimmer == nil {
		t.trimmer = ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.ToolTimeout)
	}
	if t.provider == nil {
		t.provider = mostreplayed.NewClient(mostreplayed.ClientOptions{
			BaseURL:   cfg.Engagement.BaseURL,
			Timeout:   cfg.Engagement.Timeout,
			UserAgent: cfg.Engagement.UserAgent,
			RateLimit: cfg.Engagement.RateLimit,
		})
	}

	layout := clips.Layout{AudioDir: cfg.Storage.AudioDir, ClipsDir: cfg.Storage.ClipsDir}
	repo := records.NewRepository(db.DB)

	fetcher, err := sources.NewFetcher(layout, t.downloader, m)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	extractor := clips.NewExtractor(t.trimmer, m)
	processor := pipeline.NewService(repo, fetcher, extractor, layout, pipeline.Options{Workers: cfg.Processing.Workers}, m)

	builder := manifest.NewService(repo, processor, layout, manifest.Options{
		Dir:        cfg.Storage.ManifestDir,
		Seed:       cfg.Manifest.Seed,
		SeedRandom: cfg.Manifest.SeedRandom,
		EvalRatio:  cfg.Manifest.EvalRatio,
		NoEval:     cfg.Manifest.EvalRatio == 0,
	}, m)

	return &app{
		cfg:        cfg,
		db:         db,
		registry:   registry,
		metrics:    m,
		layout:     layout,
		records:    records.NewService(repo),
		processor:  processor,
		manifest:   builder,
		engagement: engagement.NewService(repo, t.provider, m),
		sweeper: cleanup.NewService(
			[]string{cfg.Storage.AudioDir, cfg.Storage.ClipsDir, cfg.Storage.ManifestDir},
			cfg.Storage.TempMaxAge,
			cfg.Storage.SweepInterval,
		),
	}, nil
}

// dependencies exposes the app to HTTP handlers
func (a *app) dependencies() *types.Dependencies {
	return &types.Dependencies{
		DB:         a.db,
		Records:    a.records,
		Processor:  a.processor,
		Manifest:   a.manifest,
		Engagement: a.engagement,
		Registry:   a.registry,
		Version:    Version,
	}
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		log.Printf("[WARN] Failed to close database: %v", err)
	}
}
