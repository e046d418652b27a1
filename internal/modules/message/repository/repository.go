package repository

import (
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/message/domain"
)

// Repository stores channel posts per channel.
type Repository interface {
	Save(message *domain.Message) error
	// Latest returns up to limit messages of a channel, newest first.
	Latest(channelID string, limit int) ([]*domain.Message, error)
	// Since returns the messages dated after since, oldest first.
	Since(channelID string, since time.Time) ([]*domain.Message, error)
}
