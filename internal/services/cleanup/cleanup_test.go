package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTempFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"abc.m4a.part", true},
		{".abc_1.flac.123456.tmp", true},
		{".training.json.99.tmp", true},
		{"abc.m4a", false},
		{"abc_1.flac", false},
		{".abc.lock", false},
		{"notes.tmp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTempFile(tt.name))
		})
	}
}

func touch(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestSweep(t *testing.T) {
	audio := t.TempDir()
	clips := t.TempDir()

	stalePart := filepath.Join(audio, "abc.m4a.part")
	freshPart := filepath.Join(audio, "def.m4a.part")
	source := filepath.Join(audio, "abc.m4a")
	lock := filepath.Join(audio, ".abc.lock")
	staleTmp := filepath.Join(clips, ".abc_1.flac.42.tmp")
	clip := filepath.Join(clips, "abc_1.flac")

	touch(t, stalePart, 2*time.Hour)
	touch(t, freshPart, time.Minute)
	touch(t, source, 2*time.Hour)
	touch(t, lock, 2*time.Hour)
	touch(t, staleTmp, 2*time.Hour)
	touch(t, clip, 2*time.Hour)

	s := NewService([]string{audio, clips, filepath.Join(audio, "missing")}, time.Hour, time.Hour)
	assert.Equal(t, 2, s.Sweep())

	assert.NoFileExists(t, stalePart)
	assert.NoFileExists(t, staleTmp)
	assert.FileExists(t, freshPart)
	assert.FileExists(t, source)
	assert.FileExists(t, lock)
	assert.FileExists(t, clip)
}

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "abc.m4a.part")
	touch(t, stale, 2*time.Hour)

	s := NewService([]string{dir}, time.Hour, 10*time.Millisecond)
	s.Start(context.Background())
	assert.NoFileExists(t, stale, "Start sweeps immediately")

	touch(t, stale, 2*time.Hour)
	assert.Eventually(t, func() bool {
		_, err := os.Stat(stale)
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
}
