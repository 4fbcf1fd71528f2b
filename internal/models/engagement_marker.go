package models

// EngagementMarker is one (video, offset) engagement sample. A video has at
// most one marker per offset; the first stored intensity wins.
type EngagementMarker struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	VideoID     string  `json:"videoId" gorm:"not null;size:64;uniqueIndex:idx_marker_video_start,priority:1"`
	StartMillis int64   `json:"startMillis" gorm:"not null;uniqueIndex:idx_marker_video_start,priority:2"`
	Intensity   float64 `json:"intensityScoreNormalized" gorm:"column:intensity;not null"`
}
