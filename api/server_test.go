package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
	"github.com/killallgit/clipset/internal/database"
	"github.com/killallgit/clipset/internal/metrics"
	"github.com/killallgit/clipset/internal/models"
	"github.com/killallgit/clipset/internal/services/clips"
	"github.com/killallgit/clipset/internal/services/manifest"
	"github.com/killallgit/clipset/internal/services/pipeline"
	"github.com/killallgit/clipset/internal/services/records"
	"github.com/killallgit/clipset/internal/services/sources"
	"github.com/killallgit/clipset/pkg/config"
	"github.com/killallgit/clipset/pkg/ffmpeg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDownloader struct{}

func (stubDownloader) Download(ctx context.Context, url, outputPath, format string) error {
	return os.WriteFile(outputPath, []byte("m4a"), 0644)
}

type stubTrimmer struct{}

func (stubTrimmer) Trim(ctx context.Context, req ffmpeg.TrimRequest) error {
	return os.WriteFile(req.Output, []byte("fLaC"), 0644)
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	registry := prometheus.NewRegistry()
	m, err := metrics.NewPipelineMetrics(registry)
	require.NoError(t, err)

	root := t.TempDir()
	layout := clips.Layout{AudioDir: filepath.Join(root, "audio_src"), ClipsDir: filepath.Join(root, "train_src")}
	repo := records.NewRepository(db.DB)
	fetcher, err := sources.NewFetcher(layout, stubDownloader{}, m)
	require.NoError(t, err)
	processor := pipeline.NewService(repo, fetcher, clips.NewExtractor(stubTrimmer{}, m), layout, pipeline.Options{Workers: 2}, m)
	builder := manifest.NewService(repo, processor, layout, manifest.Options{Dir: filepath.Join(root, "json"), Seed: 42, EvalRatio: 0.1}, m)

	server := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 5000}, config.RateLimitConfig{})
	server.SetDependencies(&types.Dependencies{
		DB:        db,
		Records:   records.NewService(repo),
		Processor: processor,
		Manifest:  builder,
		Registry:  registry,
		Version:   "test",
	})
	require.NoError(t, server.Initialize())
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })
	return server, root
}

func do(server *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, req)
	return w
}

func TestServer_DatasetFlow(t *testing.T) {
	server, root := newTestServer(t)

	for _, body := range []string{
		`{"videoId":"vidA","start":0,"end":2,"audioSets":["music"]}`,
		`{"videoId":"vidA","start":5,"end":7,"audioSets":["speech"]}`,
		`{"videoId":"vidB","start":1,"end":3,"audioSets":["music","crowd"]}`,
	} {
		w := do(server, http.MethodPost, "/api/export", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(server, http.MethodPost, "/api/process", "")
	require.Equal(t, http.StatusOK, w.Code)
	var processed types.ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &processed))
	assert.Equal(t, types.StatusOK, processed.Status)
	assert.Equal(t, 2, processed.Result.SourcesFetched)
	assert.Equal(t, 3, processed.Result.ClipsExtracted)

	w = do(server, http.MethodPost, "/api/jsonexport", "")
	require.Equal(t, http.StatusOK, w.Code)
	var built types.ManifestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &built))
	assert.Equal(t, 3, built.TrainCount)
	assert.Equal(t, 0, built.EvalCount)
	assert.Equal(t, 3, built.Process.ClipsCached)
	assert.FileExists(t, filepath.Join(root, "json", "training.json"))
	assert.FileExists(t, filepath.Join(root, "json", "eval.json"))

	w = do(server, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `clipset_source_fetches_total{result="fetched"} 2`)
	assert.Contains(t, w.Body.String(), `clipset_manifest_entries{split="train"} 3`)

	w = do(server, http.MethodPost, "/api/purge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":3`)
}

func TestServer_PublicRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		contains       string
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK, contains: `"connected":true`},
		{name: "version", method: http.MethodGet, path: "/version", expectedStatus: http.StatusOK, contains: `"version":"test"`},
		{name: "docs redirect", method: http.MethodGet, path: "/docs", expectedStatus: http.StatusMovedPermanently},
		{name: "unknown route", method: http.MethodGet, path: "/nope", expectedStatus: http.StatusNotFound, contains: "/nope"},
		{name: "engagement not configured", method: http.MethodGet, path: "/api/most-replayed?videoId=abc", expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(server, tt.method, tt.path, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestServer_RateLimitedAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(config.ServerConfig{Port: 5000}, config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.1, Burst: 1})
	server.SetDependencies(&types.Dependencies{})
	require.NoError(t, server.Initialize())
	defer func() { _ = server.Shutdown(context.Background()) }()

	assert.Equal(t, http.StatusServiceUnavailable, do(server, http.MethodPost, "/api/process", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(server, http.MethodPost, "/api/process", "").Code)
	// Public routes are not limited
	assert.Equal(t, http.StatusOK, do(server, http.MethodGet, "/health", "").Code)
}

func TestRegisterRoutes_NilDependencies(t *testing.T) {
	assert.Error(t, RegisterRoutes(gin.New(), nil, nil))
}

// blockingProcessor runs until its request context ends
type blockingProcessor struct {
	started chan struct{}
	stopped chan struct{}
}

func (p *blockingProcessor) ProcessAll(ctx context.Context) (*models.ProcessResult, error) {
	close(p.started)
	<-ctx.Done()
	close(p.stopped)
	return nil, ctx.Err()
}

func TestServer_ShutdownCancelsInFlightRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := &blockingProcessor{started: make(chan struct{}), stopped: make(chan struct{})}

	server := NewServer(config.ServerConfig{}, config.RateLimitConfig{})
	server.SetDependencies(&types.Dependencies{Processor: p, Version: "test"})
	require.NoError(t, server.Initialize())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = server.Serve(listener) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	responded := make(chan int, 1)
	go func() {
		resp, err := client.Post("http://"+listener.Addr().String()+"/api/process", "application/json", nil)
		if err != nil {
			responded <- 0
			return
		}
		resp.Body.Close()
		responded <- resp.StatusCode
	}()
	<-p.started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = server.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The handler has returned by the time Shutdown does
	select {
	case <-p.stopped:
	default:
		t.Fatal("request handler still running after Shutdown returned")
	}

	select {
	case <-responded:
	case <-time.After(time.Second):
		t.Fatal("client never got a response")
	}
}
