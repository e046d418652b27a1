package repository

import (
	"context"

	"github.com/reshetovitsme/product-scout/internal/modules/product/domain"
)

// ListOptions narrows List. Zero values impose no constraint.
type ListOptions struct {
	ChannelID string
	Limit     int
}

// Repository defines the interface for product catalog persistence
type Repository interface {
	Upsert(ctx context.Context, product *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	// Search matches query against name, category and channel, newest first.
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
	// List returns products newest first.
	List(ctx context.Context, opts ListOptions) ([]domain.Product, error)
	// Added returns the products of a channel stored after cursor, newest
	// first, and the cursor of the newest one. The cursor follows insertion
	// order; updating a product does not move it.
	Added(ctx context.Context, channelID string, cursor int64) ([]domain.Product, int64, error)
	UpdateTags(ctx context.Context, id string, tags []string) error
	Count(ctx context.Context) (int, error)
}
