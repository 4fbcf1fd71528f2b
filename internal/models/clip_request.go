package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// LabelSeparator joins a label set for storage. Labels themselves may not contain it.
const LabelSeparator = ","

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidVideoID reports whether id is safe to use as a file name component
func ValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

// ClipRequest is a user's request to extract [Start, End) seconds of a video as a labeled clip
type ClipRequest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VideoID   string    `json:"videoId" gorm:"not null;index;size:64"`
	Start     float64   `json:"start" gorm:"column:start_seconds;not null"`
	End       float64   `json:"end" gorm:"column:end_seconds;not null"`
	LabelSet  string    `json:"labels" gorm:"column:label_set;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CompositeID identifies the clip artifact across the whole dataset
func (c ClipRequest) CompositeID() string {
	return fmt.Sprintf("%s_%d", c.VideoID, c.ID)
}

// Labels splits the stored label set
func (c ClipRequest) Labels() []string {
	if c.LabelSet == "" {
		return nil
	}
	return strings.Split(c.LabelSet, LabelSeparator)
}

// JoinLabels builds the stored form of a label set
func JoinLabels(labels []string) string {
	return strings.Join(labels, LabelSeparator)
}
