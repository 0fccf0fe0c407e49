package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixArgs(t *testing.T) {
	args := mixArgs("files/krovominus.mp3", "/tmp/voice.ogg", 1.3, "/tmp/out.mp3")

	assert.Equal(t, []string{
		"-y",
		"-i", "files/krovominus.mp3",
		"-i", "/tmp/voice.ogg",
		"-filter_complex", "[0]volume=1.30[bg];[bg][1]amix=inputs=2:duration=shortest[mix]",
		"-map", "[mix]",
		"-loglevel", "error",
		"/tmp/out.mp3",
	}, args)
}

func TestMixArgsVolumeFormatting(t *testing.T) {
	cases := []struct {
		volume float64
		want   string
	}{
		{1, "[0]volume=1.00[bg];[bg][1]amix=inputs=2:duration=shortest[mix]"},
		{0.01, "[0]volume=0.01[bg];[bg][1]amix=inputs=2:duration=shortest[mix]"},
		{2.5, "[0]volume=2.50[bg];[bg][1]amix=inputs=2:duration=shortest[mix]"},
	}

	for _, c := range cases {
		args := mixArgs("t.mp3", "s.ogg", c.volume, "o.mp3")
		assert.Contains(t, args, c.want)
	}
}

func TestMixUnknownTrack(t *testing.T) {
	m := NewFFmpegMixer("ffmpeg", NewTrackCatalog("files"), t.TempDir())

	_, err := m.Mix(context.Background(), "/tmp/voice.ogg", 1, "polka")
	assert.ErrorIs(t, err, ErrUnknownTrack)
}

// A zero exit status alone doesn't make a mix successful, the output file
// has to exist and be non-empty.
func TestMixNoUsableOutput(t *testing.T) {
	m := NewFFmpegMixer("true", NewTrackCatalog("files"), t.TempDir())

	_, err := m.Mix(context.Background(), "/tmp/voice.ogg", 1, DefaultTrack)
	assert.ErrorIs(t, err, ErrMixFailed)
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.mp3")
	assert.ErrorIs(t, checkOutput(missing), ErrMixFailed)

	empty := filepath.Join(dir, "empty.mp3")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.ErrorIs(t, checkOutput(empty), ErrMixFailed)

	full := filepath.Join(dir, "full.mp3")
	require.NoError(t, os.WriteFile(full, []byte("data"), 0o644))
	assert.NoError(t, checkOutput(full))
}
