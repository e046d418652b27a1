package service

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/product-scout/internal/modules/favorites/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Service struct {
	favorites *storage.Collection[domain.Favorite]
	logger    *slog.Logger
	now       func() time.Time
}

func New(basePath string, logger *slog.Logger) (*Service, error) {
	favorites, err := storage.NewCollection(basePath, "favorites", func(f *domain.Favorite) string { return f.ID })
	if err != nil {
		return nil, err
	}
	return &Service{favorites: favorites, logger: logger, now: time.Now}, nil
}

// Add bookmarks a record. The same record cannot be added twice.
func (s *Service) Add(input domain.NewFavorite) (*domain.Favorite, error) {
	name := strings.TrimSpace(input.Name)
	refID := strings.TrimSpace(input.RefID)
	if name == "" || refID == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "favorite name and reference are required")
	}
	if !input.Type.IsValid() {
		return nil, oops.With("type", input.Type).Wrapf(errors.ErrInvalidInput, "unknown favorite type")
	}

	existing, err := s.favorites.All()
	if err != nil {
		return nil, err
	}
	if lo.ContainsBy(existing, func(f *domain.Favorite) bool { return f.Type == input.Type && f.RefID == refID }) {
		return nil, oops.With("type", input.Type, "ref_id", refID).Wrapf(errors.ErrConflict, "already a favorite")
	}

	favorite := &domain.Favorite{
		ID:          uuid.NewString(),
		Type:        input.Type,
		RefID:       refID,
		Name:        name,
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		Tags:        input.Tags,
		AddedAt:     s.now().UTC(),
	}
	if err := s.favorites.Save(favorite); err != nil {
		return nil, oops.With("context", "failed to save favorite").Wrap(err)
	}
	return favorite, nil
}

func (s *Service) Remove(id string) error {
	return s.favorites.Delete(id)
}

// List returns matching favorites, most recently added first.
func (s *Service) List(q domain.Query) ([]*domain.Favorite, error) {
	favorites, err := s.favorites.All()
	if err != nil {
		return nil, err
	}
	favorites = lo.Filter(favorites, func(f *domain.Favorite, _ int) bool { return f.Matches(q) })
	slices.SortStableFunc(favorites, func(a, b *domain.Favorite) int { return b.AddedAt.Compare(a.AddedAt) })
	return favorites, nil
}

// Categories returns the distinct categories in use, led by "all".
func (s *Service) Categories() ([]string, error) {
	favorites, err := s.favorites.All()
	if err != nil {
		return nil, err
	}
	categories := lo.Compact(lo.Uniq(lo.Map(favorites, func(f *domain.Favorite, _ int) string { return f.Category })))
	slices.Sort(categories)
	return append([]string{domain.FacetAll}, categories...), nil
}

// CountByType counts favorites per type. Every type has an entry.
func (s *Service) CountByType() (map[domain.Type]int, error) {
	favorites, err := s.favorites.All()
	if err != nil {
		return nil, err
	}
	counts := lo.SliceToMap(domain.TypeNames(), func(name string) (domain.Type, int) { return domain.Type(name), 0 })
	for _, f := range favorites {
		counts[f.Type]++
	}
	return counts, nil
}
