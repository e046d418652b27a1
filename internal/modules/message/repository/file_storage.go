package repository

import (
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/message/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// FileStorage keeps messages in one directory per channel
type FileStorage struct {
	basePath string

	mu          sync.Mutex
	collections map[string]*storage.Collection[domain.Message]
}

// NewFileStorage creates a new file-based message repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	return &FileStorage{
		basePath:    filepath.Join(basePath, "messages"),
		collections: make(map[string]*storage.Collection[domain.Message]),
	}, nil
}

func (s *FileStorage) channel(channelID string) (*storage.Collection[domain.Message], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[channelID]; ok {
		return c, nil
	}
	c, err := storage.NewCollection(s.basePath, channelID, func(m *domain.Message) string {
		return strconv.FormatInt(m.ID, 10)
	})
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to open message directory").Wrap(err)
	}
	s.collections[channelID] = c
	return c, nil
}

func (s *FileStorage) Save(message *domain.Message) error {
	c, err := s.channel(message.ChannelID)
	if err != nil {
		return err
	}
	if err := c.Save(message); err != nil {
		return oops.With("channel_id", message.ChannelID, "message_id", message.ID, "context", "failed to save message").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Latest(channelID string, limit int) ([]*domain.Message, error) {
	messages, err := s.sorted(channelID)
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (s *FileStorage) Since(channelID string, since time.Time) ([]*domain.Message, error) {
	messages, err := s.sorted(channelID)
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(m *domain.Message, _ int) bool {
		return m.Date.After(since)
	}), nil
}

// sorted returns a channel's messages ordered by date, then id.
func (s *FileStorage) sorted(channelID string) ([]*domain.Message, error) {
	c, err := s.channel(channelID)
	if err != nil {
		return nil, err
	}
	messages, err := c.All()
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to read messages").Wrap(err)
	}
	slices.SortFunc(messages, func(a, b *domain.Message) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return messages, nil
}
