package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSourceFetch(t *testing.T) {
	m, err := NewPipelineMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordSourceFetch(ResultFetched, 2*time.Second)
	m.RecordSourceFetch(ResultCached, 0)
	m.RecordSourceFetch(ResultCached, 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.sourceFetchesTotal.WithLabelValues(ResultFetched)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.sourceFetchesTotal.WithLabelValues(ResultCached)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.sourceFetchDuration))
}

func TestRecordClipAndEngagement(t *testing.T) {
	m, err := NewPipelineMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordClipExtraction(ResultExtracted, 100*time.Millisecond)
	m.RecordClipExtraction(ResultFailed, 10*time.Millisecond)
	m.RecordEngagementLookup(ResultHit)
	m.RecordEngagementLookup(ResultEmpty)
	m.RecordProcessRun("partial")
	m.SetManifestEntries(9, 1)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.clipExtractionsTotal.WithLabelValues(ResultExtracted)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.clipExtractionsTotal.WithLabelValues(ResultFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.engagementLookupsTotal.WithLabelValues(ResultEmpty)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.processRunsTotal.WithLabelValues("partial")))
	assert.Equal(t, float64(9), testutil.ToFloat64(m.manifestEntries.WithLabelValues("train")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.manifestEntries.WithLabelValues("eval")))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewPipelineMetrics(registry)
	require.NoError(t, err)

	_, err = NewPipelineMetrics(registry)
	assert.Error(t, err)
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *PipelineMetrics
	assert.NotPanics(t, func() {
		m.RecordSourceFetch(ResultFetched, time.Second)
		m.RecordClipExtraction(ResultCached, 0)
		m.RecordEngagementLookup(ResultMiss)
		m.RecordProcessRun("complete")
		m.SetManifestEntries(1, 0)
	})
}
