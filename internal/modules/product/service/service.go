package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/extract"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	"github.com/reshetovitsme/product-scout/internal/modules/product/repository"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/oops"
)

// SearchLimit caps one catalog search.
const SearchLimit = 200

// Service handles product catalog business logic
type Service struct {
	repo   repository.Repository
	logger *slog.Logger
}

func New(repo repository.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search runs a catalog search and narrows the result with facets.
// A blank query lists the newest products.
func (s *Service) Search(ctx context.Context, query string, facets filter.Facets) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)
	if strings.TrimSpace(query) == "" {
		products, err = s.repo.List(ctx, repository.ListOptions{Limit: SearchLimit})
	} else {
		products, err = s.repo.Search(ctx, query, SearchLimit)
	}
	if err != nil {
		return nil, err
	}
	return filter.Apply(products, facets), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// Save validates and stores a product, filling defaults.
func (s *Service) Save(ctx context.Context, product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.ID == "" || product.Name == "" {
		return oops.With("product_id", product.ID).Wrapf(errors.ErrInvalidInput, "product id and name are required")
	}
	if product.Price < 0 {
		return oops.With("product_id", product.ID, "price", product.Price).Wrapf(errors.ErrInvalidInput, "price must not be negative")
	}
	if product.MinQuantity <= 0 {
		product.MinQuantity = 1
	}
	if product.Category == "" {
		product.Category = extract.DefaultCategory
	}
	if product.Contact.WhatsApp == "" {
		product.Contact.WhatsApp = domain.WhatsAppLink(product.Contact.Phone)
	}
	if product.PostedAt.IsZero() {
		product.PostedAt = time.Now().UTC()
	}
	return s.repo.Upsert(ctx, product)
}

// ByChannel returns the newest products of a channel.
func (s *Service) ByChannel(ctx context.Context, channelID string, limit int) ([]domain.Product, error) {
	return s.repo.List(ctx, repository.ListOptions{ChannelID: channelID, Limit: limit})
}

// AddedSince returns the products of a channel stored after cursor, newest
// first, with the cursor to pass next time.
func (s *Service) AddedSince(ctx context.Context, channelID string, cursor int64) ([]domain.Product, int64, error) {
	return s.repo.Added(ctx, channelID, cursor)
}

// All returns the whole catalog, newest first.
func (s *Service) All(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx, repository.ListOptions{})
}

func (s *Service) SetTags(ctx context.Context, id string, tags []string) error {
	return s.repo.UpdateTags(ctx, id, tags)
}

// SeedSamples loads the sample catalog into an empty database.
func (s *Service) SeedSamples(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	samples := domain.SampleProducts()
	for i := range samples {
		if err := s.repo.Upsert(ctx, &samples[i]); err != nil {
			return i, oops.With("product_id", samples[i].ID, "context", "failed to seed product").Wrap(err)
		}
	}
	s.logger.Info("Seeded sample catalog", "products", len(samples))
	return len(samples), nil
}
