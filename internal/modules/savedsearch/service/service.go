package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	"github.com/reshetovitsme/product-scout/internal/modules/savedsearch/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/oops"
)

// Searcher runs catalog searches.
type Searcher interface {
	Search(ctx context.Context, query string, facets filter.Facets) ([]productDomain.Product, error)
}

type Service struct {
	searches *storage.Collection[domain.SavedSearch]
	products Searcher
	logger   *slog.Logger
	now      func() time.Time
}

func New(basePath string, products Searcher, logger *slog.Logger) (*Service, error) {
	searches, err := storage.NewCollection(basePath, "saved_searches", func(s *domain.SavedSearch) string { return s.ID })
	if err != nil {
		return nil, err
	}
	return &Service{searches: searches, products: products, logger: logger, now: time.Now}, nil
}

// Create saves an active search. Name and query are required.
func (s *Service) Create(input domain.NewSavedSearch) (*domain.SavedSearch, error) {
	name := strings.TrimSpace(input.Name)
	query := strings.TrimSpace(input.Query)
	if name == "" || query == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "search name and query are required")
	}
	f := input.Filters
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return nil, oops.With("price_min", *f.PriceMin, "price_max", *f.PriceMax).Wrap(errors.ErrInvalidFilter)
	}

	search := &domain.SavedSearch{
		ID:          uuid.NewString(),
		Name:        name,
		Query:       query,
		Description: strings.TrimSpace(input.Description),
		Filters: domain.Filters{
			PriceMin: f.PriceMin,
			PriceMax: f.PriceMax,
			Category: strings.TrimSpace(f.Category),
			Channel:  strings.TrimSpace(f.Channel),
		},
		CreatedAt: s.now().UTC(),
		IsActive:  true,
	}
	if err := s.searches.Save(search); err != nil {
		return nil, oops.With("context", "failed to save search").Wrap(err)
	}
	return search, nil
}

// List returns saved searches, newest first.
func (s *Service) List() ([]*domain.SavedSearch, error) {
	searches, err := s.searches.All()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(searches, func(a, b *domain.SavedSearch) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return searches, nil
}

func (s *Service) Get(id string) (*domain.SavedSearch, error) {
	return s.searches.Get(id)
}

func (s *Service) Toggle(id string) (*domain.SavedSearch, error) {
	return s.searches.Update(id, func(ss *domain.SavedSearch) error {
		ss.IsActive = !ss.IsActive
		return nil
	})
}

func (s *Service) Delete(id string) error {
	return s.searches.Delete(id)
}

// Run executes a saved search and records when it ran and how many products it found.
func (s *Service) Run(ctx context.Context, id string) ([]productDomain.Product, error) {
	search, err := s.searches.Get(id)
	if err != nil {
		return nil, err
	}

	products, err := s.products.Search(ctx, search.Query, search.Filters.Facets())
	if err != nil {
		return nil, oops.With("search_id", id, "context", "failed to run saved search").Wrap(err)
	}

	if _, err := s.searches.Update(id, func(ss *domain.SavedSearch) error {
		ss.LastRun = s.now().UTC()
		ss.ResultCount = len(products)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("Saved search run", "search_id", id, "results", len(products))
	return products, nil
}
