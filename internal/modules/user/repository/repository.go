package repository

import (
	"github.com/reshetovitsme/product-scout/internal/modules/user/domain"
)

// Repository persists bot users keyed by Telegram user id.
type Repository interface {
	Save(user *domain.User) error
	// Get fails with errors.ErrNotFound for unknown ids.
	Get(userID int64) (*domain.User, error)
	Count() (int, error)
}
