package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// FFmpeg wraps the ffmpeg binary for clip extraction
type FFmpeg struct {
	ffmpegPath string
	timeout    time.Duration
}

// New creates a new FFmpeg instance. A zero timeout means no limit.
func New(ffmpegPath string, timeout time.Duration) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpeg{
		ffmpegPath: ffmpegPath,
		timeout:    timeout,
	}
}

// ValidateBinaries checks if ffmpeg is available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}
	return nil
}

// Trim cuts [Start, End) out of req.Input and writes it to req.Output as FLAC.
// An existing file at req.Output is overwritten.
func (f *FFmpeg) Trim(ctx context.Context, req TrimRequest) error {
	if err := req.Validate(); err != nil {
		return NewProcessingError("trim", req.Input, fmt.Errorf("%w: start=%v end=%v", err, req.Start, req.End), "")
	}
	if _, err := os.Stat(req.Input); err != nil {
		return NewProcessingError("trim", req.Input, fmt.Errorf("%w: %v", ErrSourceNotFound, err), "")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, trimArgs(req)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrProcessingTimeout, f.timeout)
		}
		return NewProcessingError("trim", req.Input, err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// trimArgs builds the ffmpeg argument list. atrim keeps samples with
// start <= t < end, and asetpts rebases timestamps so the clip starts at zero.
func trimArgs(req TrimRequest) []string {
	filter := fmt.Sprintf("atrim=start=%s:end=%s,asetpts=PTS-STARTPTS",
		formatSeconds(req.Start), formatSeconds(req.End))

	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-y",
		"-i", req.Input,
		"-vn",
		"-af", filter,
		"-c:a", OutputCodec,
		"-f", OutputCodec,
		req.Output,
	}
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
