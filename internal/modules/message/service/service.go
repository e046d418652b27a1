package service

import (
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/message/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/message/repository"
	"github.com/samber/lo"
)

// DefaultLimit is the number of messages returned when no limit is given.
const DefaultLimit = 50

// Service keeps the raw posts of managed channels
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Record stores a post that passed the channel filters.
func (s *Service) Record(message *domain.Message) error {
	return s.repo.Save(message)
}

// Latest returns the newest posts of a channel.
func (s *Service) Latest(channelID string, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.repo.Latest(channelID, limit)
}

// Listings returns the posts after since that produced a product.
func (s *Service) Listings(channelID string, since time.Time) ([]*domain.Message, error) {
	messages, err := s.repo.Since(channelID, since)
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(m *domain.Message, _ int) bool {
		return m.ProductID != ""
	}), nil
}
