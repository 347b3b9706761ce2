package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bans persists ban records. All writes go through the admission gate;
// the maintenance sweep only removes rows that are already expired.
type Bans struct {
	db *gorm.DB
}

func NewBans(db *gorm.DB) *Bans {
	return &Bans{db: db}
}

// IsBanned returns the ban expiry for userID if a row exists, expired or
// not. The caller decides what an expired row means.
func (b *Bans) IsBanned(ctx context.Context, userID int64) (time.Time, bool, error) {
	var rec BannedUser
	err := b.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load ban for %d: %w", userID, err)
	}
	return rec.BanEnd, true, nil
}

// SetBan inserts or replaces the ban row for userID. Last write wins.
func (b *Bans) SetBan(ctx context.Context, userID int64, banEnd time.Time) error {
	rec := BannedUser{UserID: userID, BanEnd: banEnd}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("set ban for %d: %w", userID, err)
	}
	return nil
}

// ClearBan removes the ban row for userID. No-op if absent; a concurrent
// double delete is harmless.
func (b *Bans) ClearBan(ctx context.Context, userID int64) error {
	err := b.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&BannedUser{}).Error
	if err != nil {
		return fmt.Errorf("clear ban for %d: %w", userID, err)
	}
	return nil
}

// PurgeExpired removes every ban row with ban_end before now. Used by the
// maintenance sweep; the gate itself only clears bans lazily.
func (b *Bans) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := b.db.WithContext(ctx).Where("ban_end <= ?", now).Delete(&BannedUser{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge expired bans: %w", res.Error)
	}
	return res.RowsAffected, nil
}
