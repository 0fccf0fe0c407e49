package model

import "time"

// Message keeps one raw update for stats counting. Never read back by the
// bot itself.
type Message struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	UserID *int64 `gorm:"constraint:OnDelete:SET NULL"`
	Text   string `gorm:"size:10000"`
	Update string

	CreatedAt time.Time
}
