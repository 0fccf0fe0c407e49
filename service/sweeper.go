package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically deletes generated audio files whose modification time
// exceeds MaxAge. Database records are left alone, handlers detect the
// resulting dangling state by checking the file on disk.
type Sweeper struct {
	Dir        string
	MaxAge     time.Duration
	Interval   time.Duration
	StartDelay time.Duration
}

func NewSweeper(dir string, maxAge, interval, startDelay time.Duration) *Sweeper {
	return &Sweeper{
		Dir:        dir,
		MaxAge:     maxAge,
		Interval:   interval,
		StartDelay: startDelay,
	}
}

// Run blocks until ctx is cancelled. A failed sweep never stops the
// schedule, the next tick still fires.
func (s *Sweeper) Run(ctx context.Context) {
	zap.L().Debug("Audio sweeper attached",
		zap.Duration("tick_every", s.Interval),
		zap.Duration("retention", s.MaxAge))

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.StartDelay):
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep deletes expired *.mp3 and *.ogg files in Dir. Per-file errors are
// skipped, a file may vanish between the scan and the stat.
func (s *Sweeper) Sweep() {
	cutoff := time.Now().Add(-s.MaxAge)

	for _, pattern := range []string{"*.mp3", "*.ogg"} {
		matches, err := filepath.Glob(filepath.Join(s.Dir, pattern))
		if err != nil {
			zap.L().Error("Failed to scan tmp dir", zap.String("pattern", pattern), zap.Error(err))
			continue
		}

		for _, name := range matches {
			fi, err := os.Stat(name)
			if err != nil || fi.IsDir() {
				continue
			}

			if fi.ModTime().Before(cutoff) {
				zap.L().Info("Removing old recording", zap.String("file", name))

				if err := os.Remove(name); err != nil {
					zap.L().Warn("Failed to remove old recording", zap.String("file", name), zap.Error(err))
				}
			}
		}
	}
}
