package model

import "time"

// User is one Telegram account the bot has seen. Created on first contact
// by the update logging hook, before any handler runs.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Bot          string `gorm:"size:128;index"`
	Username     string `gorm:"size:256;index"`
	FirstName    string `gorm:"size:256"`
	LastName     string `gorm:"size:256"`
	LanguageCode string `gorm:"size:64"`

	// Seed volume for new audios. Updated whenever the user adjusts
	// volume on any of their audios.
	VolumeLevel float64 `gorm:"default:1.0"`

	CreatedAt time.Time

	Messages []Message `gorm:"foreignKey:UserID"`
	Audios   []Audio   `gorm:"foreignKey:UserID"`
}
