package repository

import (
	"github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
)

// Repository defines the interface for joined channel persistence
type Repository interface {
	SaveJoined(channel *domain.JoinedChannel) error
	GetJoined(telegramID string) (*domain.JoinedChannel, error)
	GetAllJoined() ([]*domain.JoinedChannel, error)
}

// FileStorage keeps joined channels keyed by telegram id
type FileStorage struct {
	joined *storage.Collection[domain.JoinedChannel]
}

func NewFileStorage(basePath string) (*FileStorage, error) {
	joined, err := storage.NewCollection(basePath, "joined_channels", func(j *domain.JoinedChannel) string {
		return j.TelegramID
	})
	if err != nil {
		return nil, err
	}
	return &FileStorage{joined: joined}, nil
}

func (s *FileStorage) SaveJoined(channel *domain.JoinedChannel) error {
	return s.joined.Save(channel)
}

func (s *FileStorage) GetJoined(telegramID string) (*domain.JoinedChannel, error) {
	return s.joined.Get(telegramID)
}

func (s *FileStorage) GetAllJoined() ([]*domain.JoinedChannel, error) {
	return s.joined.All()
}
