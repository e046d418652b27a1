package repository

import (
	"strconv"

	"github.com/reshetovitsme/product-scout/internal/modules/user/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/oops"
)

// FileStorage implements Repository on a JSON collection
type FileStorage struct {
	users *storage.Collection[domain.User]
}

// NewFileStorage creates a new file-based user repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	users, err := storage.NewCollection(basePath, "users", func(u *domain.User) string {
		return strconv.FormatInt(u.ID, 10)
	})
	if err != nil {
		return nil, err
	}
	return &FileStorage{users: users}, nil
}

func (s *FileStorage) Save(user *domain.User) error {
	if err := s.users.Save(user); err != nil {
		return oops.With("user_id", user.ID, "context", "failed to save user").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Get(userID int64) (*domain.User, error) {
	user, err := s.users.Get(strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, oops.With("user_id", userID).Wrap(err)
	}
	return user, nil
}

func (s *FileStorage) Count() (int, error) {
	users, err := s.users.All()
	if err != nil {
		return 0, oops.With("context", "failed to list users").Wrap(err)
	}
	return len(users), nil
}
