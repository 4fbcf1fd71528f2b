package clips

import (
	"fmt"
	"path/filepath"

	"github.com/killallgit/clipset/internal/models"
)

// Layout maps records to artifact paths. Paths depend only on the record,
// so a second pass finds what the first one produced.
type Layout struct {
	AudioDir string
	ClipsDir string
}

// SourcePath is where a video's downloaded audio lives
func (l Layout) SourcePath(videoID string) string {
	return filepath.Join(l.AudioDir, videoID+".m4a")
}

// ClipPath is where a clip request's extracted audio lives
func (l Layout) ClipPath(req models.ClipRequest) string {
	return filepath.Join(l.ClipsDir, fmt.Sprintf("%s.flac", req.CompositeID()))
}
