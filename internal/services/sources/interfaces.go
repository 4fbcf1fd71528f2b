package sources

import "context"

// Downloader fetches a remote video's audio to a local file
type Downloader interface {
	Download(ctx context.Context, url, outputPath, format string) error
}

// Fetcher makes source audio available locally
type Fetcher interface {
	// EnsureSource makes sure the video's audio is on disk and returns its path.
	// fetched is false when the file was already there.
	EnsureSource(ctx context.Context, videoID string) (path string, fetched bool, err error)
}
