package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// AudioOnlyM4A selects the best audio-only stream already in m4a, so no transcoding happens
const AudioOnlyM4A = "ba[ext=m4a]"

// Common errors
var (
	ErrNoOutput = errors.New("downloader exited cleanly but produced no file")
	ErrTimeout  = errors.New("download timeout")
)

// DownloadOptions configures the download behavior
type DownloadOptions struct {
	ExecutablePath string        // yt-dlp binary, resolved through PATH when not absolute
	Timeout        time.Duration // Per-download timeout (0 = no limit)
}

// DefaultOptions returns default download options
func DefaultOptions() DownloadOptions {
	return DownloadOptions{
		ExecutablePath: "yt-dlp",
	}
}

// DownloadError carries the downloader's diagnostics for a failed fetch
type DownloadError struct {
	URL    string
	Err    error
	Stderr string
}

func (e *DownloadError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("download of %s failed: %v (stderr: %s)", e.URL, e.Err, e.Stderr)
	}
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Downloader fetches remote media through yt-dlp
type Downloader struct {
	options DownloadOptions
}

// NewDownloader creates a new downloader with the given options
func NewDownloader(options DownloadOptions) *Downloader {
	if options.ExecutablePath == "" {
		options.ExecutablePath = DefaultOptions().ExecutablePath
	}
	return &Downloader{options: options}
}

// VideoURL returns the canonical watch URL for a video id
func VideoURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Download fetches url with the given format selector and writes it to outputPath.
// outputPath is passed as a literal template, so it must not contain '%'.
func (d *Downloader) Download(ctx context.Context, url, outputPath, format string) error {
	if strings.Contains(outputPath, "%") {
		return &DownloadError{URL: url, Err: fmt.Errorf("output path %q contains a template directive", outputPath)}
	}
	if format == "" {
		format = AudioOnlyM4A
	}

	if d.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.options.Timeout)
		defer cancel()
	}

	log.Printf("[DEBUG] Starting download from %s to %s", url, outputPath)

	cmd := ytdlp.New().
		SetExecutable(d.options.ExecutablePath).
		Format(format).
		Output(outputPath).
		NoPlaylist().
		NoProgress().
		ForceOverwrites()

	result, err := cmd.Run(ctx, url)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, d.options.Timeout)
		}
		dlErr := &DownloadError{URL: url, Err: err}
		if result != nil {
			dlErr.Stderr = strings.TrimSpace(result.Stderr)
		}
		return dlErr
	}

	if _, err := os.Stat(outputPath); err != nil {
		return &DownloadError{URL: url, Err: fmt.Errorf("%w: %v", ErrNoOutput, err)}
	}

	return nil
}
