// Package model defines database models
package model

import "time"

// Audio is one received voice/audio message plus its current mix parameters.
type Audio struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	FileID string `gorm:"size:256"`

	// Original decoded file on local storage. Owned by this record for its
	// lifetime and never mutated. The retention sweeper may reclaim the
	// file itself, handlers must check it still exists.
	FilePath string `gorm:"size:512"`

	UserID *int64 `gorm:"constraint:OnDelete:SET NULL"`

	// External lookup token used in callback payloads instead of the ID
	PublicKey string `gorm:"size:16;uniqueIndex"`

	// Gain multiplier for the backing track, floor 0.01. Authoritative for
	// this audio's re-renders.
	VolumeLevel float64

	// Backing track selector, always a catalog member
	Minus string `gorm:"size:256"`

	CreatedAt time.Time
}
