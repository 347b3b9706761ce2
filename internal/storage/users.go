package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Users is the registry of everyone who ever started the bot.
// Append-only from the bot's point of view.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// EnsureRegistered upserts the user by telegram id. Idempotent.
func (u *Users) EnsureRegistered(ctx context.Context, tgID int64) error {
	var user User
	err := u.db.WithContext(ctx).
		Where(User{TgID: tgID}).
		FirstOrCreate(&user).Error
	if err != nil {
		return fmt.Errorf("register user %d: %w", tgID, err)
	}
	return nil
}

// ListAll returns the telegram ids of all registered users.
func (u *Users) ListAll(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := u.db.WithContext(ctx).Model(&User{}).Pluck("tg_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ids, nil
}
