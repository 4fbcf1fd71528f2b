package engagement

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/killallgit/clipset/internal/database"
	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/models"
	"github.com/killallgit/clipset/internal/services/records"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"github.com/killallgit/clipset/pkg/mostreplayed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider answers from a fixed table and counts calls. Like the HTTP
// client, it gives up when ctx ends.
type fakeProvider struct {
	calls   atomic.Int32
	delay   time.Duration
	markers []mostreplayed.Marker
	err     error
	started chan struct{}
	once    sync.Once
}

func (p *fakeProvider) Fetch(ctx context.Context, videoID string) ([]mostreplayed.Marker, error) {
	p.calls.Add(1)
	if p.started != nil {
		p.once.Do(func() { close(p.started) })
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.markers, nil
}

func newTestCache(t *testing.T, p Provider) (Cache, records.Repository, *database.DB) {
	t.Helper()
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	repo := records.NewRepository(db.DB)
	return NewService(repo, p, nil), repo, db
}

func TestGetMarkers_FetchesOnceThenServesStored(t *testing.T) {
	p := &fakeProvider{markers: []mostreplayed.Marker{
		{StartMillis: 0, Intensity: 1},
		{StartMillis: 2500, Intensity: 0.42},
	}}
	cache, repo, _ := newTestCache(t, p)
	ctx := context.Background()

	first, err := cache.GetMarkers(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "abc", first[0].VideoID)
	assert.Equal(t, int64(2500), first[1].StartMillis)
	assert.Equal(t, 0.42, first[1].Intensity)

	stored, err := repo.MarkersFor(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	second, err := cache.GetMarkers(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestGetMarkers_StoredRowsSkipProvider(t *testing.T) {
	p := &fakeProvider{}
	cache, repo, _ := newTestCache(t, p)
	ctx := context.Background()

	require.NoError(t, repo.UpsertMarkers(ctx, []models.EngagementMarker{{VideoID: "abc", StartMillis: 10, Intensity: 0.5}}))

	got, err := cache.GetMarkers(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].StartMillis)
	assert.Equal(t, int32(0), p.calls.Load())
}

func TestGetMarkers_NoDataIsNotCached(t *testing.T) {
	p := &fakeProvider{err: mostreplayed.ErrNoData}
	cache, repo, _ := newTestCache(t, p)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cache.GetMarkers(ctx, "quiet")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Equal(t, int32(3), p.calls.Load())

	stored, err := repo.MarkersFor(ctx, "quiet")
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Data published later is picked up
	p.err = nil
	p.markers = []mostreplayed.Marker{{StartMillis: 0, Intensity: 1}}
	got, err := cache.GetMarkers(ctx, "quiet")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetMarkers_ProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("provider returned status 503")}
	cache, repo, _ := newTestCache(t, p)
	ctx := context.Background()

	_, err := cache.GetMarkers(ctx, "abc")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeExternalService))
	assert.Contains(t, err.Error(), "503")

	stored, err := repo.MarkersFor(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGetMarkers_ConcurrentMissesShareFetch(t *testing.T) {
	p := &fakeProvider{
		delay:   50 * time.Millisecond,
		markers: []mostreplayed.Marker{{StartMillis: 0, Intensity: 1}},
	}
	cache, _, _ := newTestCache(t, p)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.GetMarkers(context.Background(), "abc")
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), p.calls.Load())
}

func TestGetMarkers_InvalidVideoID(t *testing.T) {
	p := &fakeProvider{}
	cache, _, _ := newTestCache(t, p)

	for _, id := range []string{"", "a/b", "has space"} {
		_, err := cache.GetMarkers(context.Background(), id)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation), id)
	}
	assert.Equal(t, int32(0), p.calls.Load())
}

func TestGetMarkers_StorageError(t *testing.T) {
	p := &fakeProvider{}
	cache, _, db := newTestCache(t, p)
	require.NoError(t, db.Close())

	_, err := cache.GetMarkers(context.Background(), "abc")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeStorage))
	assert.Equal(t, int32(0), p.calls.Load())
}

func TestGetMarkers_RecordsLookups(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := metrics.NewPipelineMetrics(registry)
	require.NoError(t, err)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	p := &fakeProvider{markers: []mostreplayed.Marker{{StartMillis: 0, Intensity: 1}}}
	cache := NewService(records.NewRepository(db.DB), p, m)

	_, err = cache.GetMarkers(context.Background(), "abc")
	require.NoError(t, err)
	_, err = cache.GetMarkers(context.Background(), "abc")
	require.NoError(t, err)

	expected := `
# HELP clipset_engagement_lookups_total Total number of engagement marker lookups by result
# TYPE clipset_engagement_lookups_total counter
clipset_engagement_lookups_total{result="hit"} 1
clipset_engagement_lookups_total{result="miss"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "clipset_engagement_lookups_total"))
}

func TestGetMarkers_CallerCancellationDoesNotAbortSharedFetch(t *testing.T) {
	p := &fakeProvider{
		delay:   150 * time.Millisecond,
		started: make(chan struct{}),
		markers: []mostreplayed.Marker{{StartMillis: 0, Intensity: 1}, {StartMillis: 1000, Intensity: 0.5}},
	}
	cache, repo, _ := newTestCache(t, p)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := cache.GetMarkers(ctxA, "abc")
		errA <- err
	}()
	<-p.started

	type outcome struct {
		markers []models.EngagementMarker
		err     error
	}
	resB := make(chan outcome, 1)
	go func() {
		markers, err := cache.GetMarkers(context.Background(), "abc")
		resB <- outcome{markers, err}
	}()
	cancelA()

	err := <-errA
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeCancelled), "got %v", err)

	b := <-resB
	require.NoError(t, b.err)
	assert.Len(t, b.markers, 2)
	assert.Equal(t, int32(1), p.calls.Load())

	stored, err := repo.MarkersFor(context.Background(), "abc")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
