package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestValidVideoID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"dQw4w9WgXcQ", true},
		{"a-b_c", true},
		{"", false},
		{"../etc", false},
		{"abc def", false},
		{"abc/def", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidVideoID(tt.id))
		})
	}
}

func TestClipRequest_Labels(t *testing.T) {
	c := ClipRequest{ID: 7, VideoID: "abc", LabelSet: JoinLabels([]string{"music", "speech"})}

	assert.Equal(t, "music,speech", c.LabelSet)
	assert.Equal(t, []string{"music", "speech"}, c.Labels())
	assert.Equal(t, "abc_7", c.CompositeID())
	assert.Nil(t, ClipRequest{}.Labels())
}

func TestEngagementMarker_UniquePerOffset(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ClipRequest{}, &EngagementMarker{}))

	require.NoError(t, db.Create(&EngagementMarker{VideoID: "abc", StartMillis: 0, Intensity: 1}).Error)
	require.NoError(t, db.Create(&EngagementMarker{VideoID: "xyz", StartMillis: 0, Intensity: 0.5}).Error)

	err = db.Create(&EngagementMarker{VideoID: "abc", StartMillis: 0, Intensity: 0.2}).Error
	assert.Error(t, err)
}

func TestProcessResult_HasFailures(t *testing.T) {
	var nilResult *ProcessResult
	assert.False(t, nilResult.HasFailures())

	r := &ProcessResult{}
	assert.False(t, r.HasFailures())

	r.Failed = append(r.Failed, Failure{Kind: ArtifactClip, ID: "abc_1", ErrorKind: "EXTERNAL_TOOL"})
	assert.True(t, r.HasFailures())
}
