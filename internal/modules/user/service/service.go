package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/user/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/user/repository"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles user business logic
type Service struct {
	repo         repository.Repository
	allowedUsers []int64
	logger       *slog.Logger

	mu sync.Mutex
}

// New creates a new user service. An empty allow-list admits everyone.
func New(repo repository.Repository, allowedUsers []int64, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		allowedUsers: allowedUsers,
		logger:       logger,
	}
}

// IsAuthorized checks if a user may talk to the bot
func (s *Service) IsAuthorized(userID int64) bool {
	if len(s.allowedUsers) == 0 {
		return true
	}
	return lo.Contains(s.allowedUsers, userID)
}

// Register records a user on /start. The first user ever registered becomes admin.
func (s *Service) Register(userID int64, username string) (*domain.User, error) {
	if !s.IsAuthorized(userID) {
		return nil, oops.With("user_id", userID).Wrap(errors.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Get(userID)
	switch {
	case err == nil:
		if existing.Username != username && username != "" {
			existing.Username = username
			if err := s.repo.Save(existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	case !errors.IsNotFound(err):
		return nil, err
	}

	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        userID,
		Username:  username,
		IsAdmin:   count == 0,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.Save(user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user", user.Handle(), "admin", user.IsAdmin)
	return user, nil
}

func (s *Service) Get(userID int64) (*domain.User, error) {
	return s.repo.Get(userID)
}

// Count is the number of users that ran /start.
func (s *Service) Count() (int, error) {
	return s.repo.Count()
}
