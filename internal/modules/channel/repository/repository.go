package repository

import (
	"github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
)

// Repository defines the interface for channel data persistence
type Repository interface {
	SaveChannel(channel *domain.Channel) error
	GetChannel(channelID string) (*domain.Channel, error)
	GetAllChannels() ([]*domain.Channel, error)
	DeleteChannel(channelID string) error
	// UpdateChannel applies mutate to the stored channel and saves the result.
	UpdateChannel(channelID string, mutate func(*domain.Channel) error) (*domain.Channel, error)
}
