// Package service holds the audio pipeline: the ffmpeg mixer, the backing
// track catalog, the retention sweeper and stats collection
package service

import (
	"bitwise74/minus-bot/util"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrMixFailed is returned when ffmpeg produced no usable output. The exit
// code alone isn't trusted, the output file is checked instead.
var ErrMixFailed = errors.New("mixing produced no usable output")

// Mixer produces one mixed file from a source voice recording and a backing
// track scaled by volume. Implementations must never delete the source.
type Mixer interface {
	Mix(ctx context.Context, sourcePath string, volume float64, selector string) (string, error)
}

// FFmpegMixer shells out to ffmpeg with a structured argument list.
type FFmpegMixer struct {
	Path   string
	Tracks *TrackCatalog
	TmpDir string
}

func NewFFmpegMixer(path string, tracks *TrackCatalog, tmpDir string) *FFmpegMixer {
	if path == "" {
		path = "ffmpeg"
	}

	return &FFmpegMixer{
		Path:   path,
		Tracks: tracks,
		TmpDir: tmpDir,
	}
}

// mixArgs builds the ffmpeg invocation: backing track gain-scaled by volume,
// mixed additively with the unscaled voice, truncated to the shorter input.
func mixArgs(trackPath, sourcePath string, volume float64, outputPath string) []string {
	filter := fmt.Sprintf("[0]volume=%.2f[bg];[bg][1]amix=inputs=2:duration=shortest[mix]", volume)

	return []string{
		"-y",
		"-i", trackPath,
		"-i", sourcePath,
		"-filter_complex", filter,
		"-map", "[mix]",
		"-loglevel", "error",
		outputPath,
	}
}

// Mix writes exactly one new file under TmpDir per call. A non-zero ffmpeg
// exit is logged but not fatal on its own, the result only counts as failed
// when the output file is missing or empty.
func (m *FFmpegMixer) Mix(ctx context.Context, sourcePath string, volume float64, selector string) (string, error) {
	trackPath, err := m.Tracks.Resolve(selector)
	if err != nil {
		return "", err
	}

	key, err := util.PublicKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate output name, %w", err)
	}
	outputPath := filepath.Join(m.TmpDir, "mix_"+key+".mp3")

	cmd := exec.CommandContext(ctx, m.Path, mixArgs(trackPath, sourcePath, volume, outputPath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		zap.L().Warn("ffmpeg exited with an error",
			zap.String("source", sourcePath),
			zap.Float64("volume", volume),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
	}

	if err := checkOutput(outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

func checkOutput(path string) error {
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		return ErrMixFailed
	}

	return nil
}
