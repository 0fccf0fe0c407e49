package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, age time.Duration) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestSweepDeletesOnlyExpiredAudio(t *testing.T) {
	dir := t.TempDir()

	expired := filepath.Join(dir, "mix_old.mp3")
	touch(t, expired, 49*time.Hour)

	fresh := filepath.Join(dir, "voice_fresh.ogg")
	touch(t, fresh, 47*time.Hour)

	unrelated := filepath.Join(dir, "notes.txt")
	touch(t, unrelated, 90*time.Hour)

	s := NewSweeper(dir, 48*time.Hour, time.Hour, 0)
	s.Sweep()

	_, err := os.Stat(expired)
	assert.True(t, os.IsNotExist(err), "expired recording should be removed")

	_, err = os.Stat(fresh)
	assert.NoError(t, err, "recording inside the retention window should stay")

	_, err = os.Stat(unrelated)
	assert.NoError(t, err, "non-audio files are never touched")
}

func TestSweepSkipsMissingDir(t *testing.T) {
	s := NewSweeper(filepath.Join(t.TempDir(), "gone"), 48*time.Hour, time.Hour, 0)

	// Glob on a missing dir simply matches nothing
	s.Sweep()
}
