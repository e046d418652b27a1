package repository

import (
	"github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/oops"
)

// FileStorage implements Repository with one JSON file per channel
type FileStorage struct {
	channels *storage.Collection[domain.Channel]
}

// NewFileStorage creates a new file-based channel repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	channels, err := storage.NewCollection(basePath, "channels", func(c *domain.Channel) string { return c.ID })
	if err != nil {
		return nil, err
	}
	return &FileStorage{channels: channels}, nil
}

func (s *FileStorage) SaveChannel(channel *domain.Channel) error {
	if err := s.channels.Save(channel); err != nil {
		return oops.With("channel_id", channel.ID, "context", "failed to save channel").Wrap(err)
	}
	return nil
}

func (s *FileStorage) GetChannel(channelID string) (*domain.Channel, error) {
	channel, err := s.channels.Get(channelID)
	if err != nil {
		return nil, notFound(channelID, err)
	}
	return channel, nil
}

func (s *FileStorage) GetAllChannels() ([]*domain.Channel, error) {
	return s.channels.All()
}

func (s *FileStorage) DeleteChannel(channelID string) error {
	return notFound(channelID, s.channels.Delete(channelID))
}

func (s *FileStorage) UpdateChannel(channelID string, mutate func(*domain.Channel) error) (*domain.Channel, error) {
	channel, err := s.channels.Update(channelID, mutate)
	if err != nil {
		return nil, notFound(channelID, err)
	}
	return channel, nil
}

// notFound swaps a generic not-found error for ErrChannelNotFound.
func notFound(channelID string, err error) error {
	if errors.IsNotFound(err) {
		return oops.With("channel_id", channelID).Wrap(errors.ErrChannelNotFound)
	}
	return err
}
