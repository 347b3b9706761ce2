package storage

import "time"

// User is a known bot user, registered on first /start.
type User struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	TgID int64 `gorm:"uniqueIndex;not null"`
}

func (User) TableName() string { return "users" }

// BannedUser holds an active ban. At most one row per user; the row is
// removed lazily the first time it is seen with BanEnd in the past.
type BannedUser struct {
	UserID int64     `gorm:"primaryKey"`
	BanEnd time.Time `gorm:"not null"`
}

func (BannedUser) TableName() string { return "banned_users" }
