// Package metrics provides pipeline metrics for observability
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values
const (
	ResultFetched   = "fetched"
	ResultExtracted = "extracted"
	ResultCached    = "cached"
	ResultFailed    = "failed"
	ResultHit       = "hit"
	ResultMiss      = "miss"
	ResultEmpty     = "empty"
	ResultError     = "error"
)

// PipelineMetrics contains Prometheus metrics for source fetching, clip
// extraction, engagement lookups and manifest builds. All Record methods are
// safe to call on a nil receiver.
type PipelineMetrics struct {
	registry *prometheus.Registry

	sourceFetchesTotal     *prometheus.CounterVec
	sourceFetchDuration    prometheus.Histogram
	clipExtractionsTotal   *prometheus.CounterVec
	clipExtractionDuration prometheus.Histogram
	engagementLookupsTotal *prometheus.CounterVec
	processRunsTotal       *prometheus.CounterVec
	manifestEntries        *prometheus.GaugeVec
}

// NewPipelineMetrics creates and registers new pipeline metrics
func NewPipelineMetrics(registry *prometheus.Registry) (*PipelineMetrics, error) {
	m := &PipelineMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *PipelineMetrics) initMetrics() {
	m.sourceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipset_source_fetches_total",
			Help: "Total number of source audio lookups by result",
		},
		[]string{"result"}, // fetched, cached, failed
	)

	m.sourceFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clipset_source_fetch_duration_seconds",
			Help:    "Time taken by the external downloader",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	m.clipExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipset_clip_extractions_total",
			Help: "Total number of clip lookups by result",
		},
		[]string{"result"}, // extracted, cached, failed
	)

	m.clipExtractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clipset_clip_extraction_duration_seconds",
			Help:    "Time taken by the external trimmer",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	m.engagementLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipset_engagement_lookups_total",
			Help: "Total number of engagement marker lookups by result",
		},
		[]string{"result"}, // hit, miss, empty, error
	)

	m.processRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipset_process_runs_total",
			Help: "Total number of processing passes by outcome",
		},
		[]string{"outcome"}, // complete, partial, error
	)

	m.manifestEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clipset_manifest_entries",
			Help: "Number of entries in the most recently built manifest split",
		},
		[]string{"split"}, // train, eval
	)
}

// Describe implements prometheus.Collector
func (m *PipelineMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.sourceFetchesTotal.Describe(ch)
	m.sourceFetchDuration.Describe(ch)
	m.clipExtractionsTotal.Describe(ch)
	m.clipExtractionDuration.Describe(ch)
	m.engagementLookupsTotal.Describe(ch)
	m.processRunsTotal.Describe(ch)
	m.manifestEntries.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *PipelineMetrics) Collect(ch chan<- prometheus.Metric) {
	m.sourceFetchesTotal.Collect(ch)
	m.sourceFetchDuration.Collect(ch)
	m.clipExtractionsTotal.Collect(ch)
	m.clipExtractionDuration.Collect(ch)
	m.engagementLookupsTotal.Collect(ch)
	m.processRunsTotal.Collect(ch)
	m.manifestEntries.Collect(ch)
}

// RecordSourceFetch records one source lookup. elapsed is only observed for downloads.
func (m *PipelineMetrics) RecordSourceFetch(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.sourceFetchesTotal.WithLabelValues(result).Inc()
	if result != ResultCached {
		m.sourceFetchDuration.Observe(elapsed.Seconds())
	}
}

// RecordClipExtraction records one clip lookup. elapsed is only observed for trims.
func (m *PipelineMetrics) RecordClipExtraction(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.clipExtractionsTotal.WithLabelValues(result).Inc()
	if result != ResultCached {
		m.clipExtractionDuration.Observe(elapsed.Seconds())
	}
}

// RecordEngagementLookup records one marker lookup
func (m *PipelineMetrics) RecordEngagementLookup(result string) {
	if m == nil {
		return
	}
	m.engagementLookupsTotal.WithLabelValues(result).Inc()
}

// RecordProcessRun records the outcome of a processing pass
func (m *PipelineMetrics) RecordProcessRun(outcome string) {
	if m == nil {
		return
	}
	m.processRunsTotal.WithLabelValues(outcome).Inc()
}

// SetManifestEntries records the size of the last built manifest
func (m *PipelineMetrics) SetManifestEntries(train, eval int) {
	if m == nil {
		return
	}
	m.manifestEntries.WithLabelValues("train").Set(float64(train))
	m.manifestEntries.WithLabelValues("eval").Set(float64(eval))
}
