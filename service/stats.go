package service

import (
	"time"

	"bitwise74/minus-bot/model"

	"gorm.io/gorm"
)

// StatsWindow is one rolling window of creation counts.
type StatsWindow struct {
	Window   string `json:"window"`
	Users    int64  `json:"users"`
	Audios   int64  `json:"audios"`
	Messages int64  `json:"messages"`
}

// CollectStats counts users, audios and messages created within rolling
// day/week/month/all-time windows.
func CollectStats(db *gorm.DB) ([]StatsWindow, error) {
	now := time.Now()

	windows := []struct {
		label string
		since time.Time
	}{
		{"day", now.Add(-24 * time.Hour)},
		{"week", now.Add(-7 * 24 * time.Hour)},
		{"month", now.Add(-30 * 24 * time.Hour)},
		{"all", time.Time{}},
	}

	out := make([]StatsWindow, 0, len(windows))

	for _, w := range windows {
		row := StatsWindow{Window: w.label}

		for _, c := range []struct {
			m     any
			count *int64
		}{
			{model.User{}, &row.Users},
			{model.Audio{}, &row.Audios},
			{model.Message{}, &row.Messages},
		} {
			q := db.Model(c.m)
			if !w.since.IsZero() {
				q = q.Where("created_at > ?", w.since)
			}

			if err := q.Count(c.count).Error; err != nil {
				return nil, err
			}
		}

		out = append(out, row)
	}

	return out, nil
}
