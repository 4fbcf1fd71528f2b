package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeYtdlp creates a shell script standing in for yt-dlp. The script
// receives the same arguments the real binary would.
func writeFakeYtdlp(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// writesOutput touches the file named after -o/--output
const writesOutput = `
while [ $# -gt 0 ]; do
  case "$1" in
    -o|--output) shift; printf 'm4a' > "$1" ;;
  esac
  shift
done
exit 0
`

func TestNewDownloader(t *testing.T) {
	d := NewDownloader(DownloadOptions{})
	assert.Equal(t, "yt-dlp", d.options.ExecutablePath)
	assert.Zero(t, d.options.Timeout)
}

func TestVideoURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", VideoURL("dQw4w9WgXcQ"))
}

func TestDownload(t *testing.T) {
	out := filepath.Join(t.TempDir(), "abc.m4a.part")
	d := NewDownloader(DownloadOptions{ExecutablePath: writeFakeYtdlp(t, writesOutput)})

	require.NoError(t, d.Download(context.Background(), VideoURL("abc"), out, AudioOnlyM4A))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "m4a", string(data))
}

func TestDownloadFailureCarriesStderr(t *testing.T) {
	bin := writeFakeYtdlp(t, "echo 'ERROR: [youtube] abc: Video unavailable' >&2\nexit 1\n")
	out := filepath.Join(t.TempDir(), "abc.m4a.part")

	err := NewDownloader(DownloadOptions{ExecutablePath: bin}).Download(context.Background(), VideoURL("abc"), out, AudioOnlyM4A)
	require.Error(t, err)

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, VideoURL("abc"), dlErr.URL)
	assert.NoFileExists(t, out)
}

func TestDownloadWithoutOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "abc.m4a.part")
	d := NewDownloader(DownloadOptions{ExecutablePath: writeFakeYtdlp(t, "exit 0\n")})

	err := d.Download(context.Background(), VideoURL("abc"), out, AudioOnlyM4A)
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestDownloadRejectsTemplateDirectives(t *testing.T) {
	d := NewDownloader(DefaultOptions())
	err := d.Download(context.Background(), VideoURL("abc"), "audio_src/%(id)s.m4a", AudioOnlyM4A)

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Contains(t, err.Error(), "template directive")
}
