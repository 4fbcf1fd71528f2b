// Package mostreplayed fetches per-video "most replayed" engagement markers
// from a YouTube data proxy.
package mostreplayed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public proxy serving the mostReplayed part
const DefaultBaseURL = "https://yt.lemnoslife.com"

// Common errors
var (
	// ErrNoData means the provider answered but has no engagement data for the video
	ErrNoData = errors.New("no engagement data for video")
	// ErrMalformedResponse means the provider body could not be interpreted
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Marker is one engagement sample as reported by the provider
type Marker struct {
	StartMillis int64
	Intensity   float64
}

// ClientOptions configures the provider client
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	RateLimit float64 // Requests per second (0 = unlimited)
	MaxSize   int64   // Maximum response size in bytes
	Transport http.RoundTripper
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:   DefaultBaseURL,
		Timeout:   15 * time.Second,
		UserAgent: "clipset/1.0",
		RateLimit: 2,
		MaxSize:   5 * 1024 * 1024,
	}
}

// Client talks to the engagement data provider
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	options ClientOptions
}

// NewClient creates a new provider client
func NewClient(options ClientOptions) *Client {
	defaults := DefaultClientOptions()
	if options.BaseURL == "" {
		options.BaseURL = defaults.BaseURL
	}
	if options.UserAgent == "" {
		options.UserAgent = defaults.UserAgent
	}
	if options.MaxSize <= 0 {
		options.MaxSize = defaults.MaxSize
	}
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")

	transport := options.Transport
	if transport == nil {
		transport = &http.Transport{
			MaxIdleConns:        5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	}

	limit := rate.Inf
	if options.RateLimit > 0 {
		limit = rate.Limit(options.RateLimit)
	}

	return &Client{
		client: &http.Client{
			Timeout:   options.Timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(limit, 1),
		options: options,
	}
}

type videosResponse struct {
	Items []struct {
		MostReplayed *struct {
			Markers []struct {
				StartMillis              *int64   `json:"startMillis"`
				IntensityScoreNormalized *float64 `json:"intensityScoreNormalized"`
			} `json:"markers"`
		} `json:"mostReplayed"`
	} `json:"items"`
}

// Fetch returns the engagement markers for a video.
// ErrNoData is returned when the provider has nothing for the video.
func (c *Client) Fetch(ctx context.Context, videoID string) ([]Marker, error) {
	if videoID == "" {
		return nil, fmt.Errorf("empty video id")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/videos?part=mostReplayed&id=%s", c.options.BaseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch engagement data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.options.MaxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	return parseMarkers(body)
}

func parseMarkers(body []byte) ([]Marker, error) {
	var parsed videosResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(parsed.Items) == 0 || parsed.Items[0].MostReplayed == nil {
		return nil, ErrNoData
	}

	raw := parsed.Items[0].MostReplayed.Markers
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	markers := make([]Marker, 0, len(raw))
	for i, m := range raw {
		if m.StartMillis == nil || m.IntensityScoreNormalized == nil {
			return nil, fmt.Errorf("%w: marker %d missing startMillis or intensityScoreNormalized", ErrMalformedResponse, i)
		}
		markers = append(markers, Marker{
			StartMillis: *m.StartMillis,
			Intensity:   *m.IntensityScoreNormalized,
		})
	}

	return markers, nil
}
