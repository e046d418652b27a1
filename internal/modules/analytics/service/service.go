package service

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/analytics/domain"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const (
	topCategories  = 5
	recentProducts = 5
)

type Products interface {
	All(ctx context.Context) ([]productDomain.Product, error)
}

type Channels interface {
	List(q channelDomain.Query) ([]*channelDomain.Channel, error)
}

type Service struct {
	products Products
	channels Channels
	now      func() time.Time
}

func New(products Products, channels Channels) *Service {
	return &Service{products: products, channels: channels, now: time.Now}
}

// Overview summarises the catalog for the products posted within r.
func (s *Service) Overview(ctx context.Context, r domain.Range) (*domain.Overview, error) {
	r = lo.CoalesceOrEmpty(r, domain.Range30d)
	if !r.IsValid() {
		return nil, oops.With("range", r).Wrapf(errors.ErrInvalidInput, "unknown range")
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, oops.With("context", "failed to load catalog").Wrap(err)
	}
	if window := r.Window(); window > 0 {
		cutoff := s.now().Add(-window)
		products = lo.Filter(products, func(p productDomain.Product, _ int) bool { return !p.PostedAt.Before(cutoff) })
	}

	active, err := s.channels.List(channelDomain.Query{Status: string(channelDomain.StatusActive)})
	if err != nil {
		return nil, err
	}

	overview := &domain.Overview{
		Range:          r,
		TotalProducts:  len(products),
		ActiveChannels: len(active),
		AveragePrice:   averagePrice(products),
		TopCategories:  categoryShares(products),
		Channels:       channelPerformance(products),
		Recent:         recent(products),
	}
	return overview, nil
}

func averagePrice(products []productDomain.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	return round2(lo.SumBy(products, func(p productDomain.Product) float64 { return p.Price }) / float64(len(products)))
}

func categoryShares(products []productDomain.Product) []domain.CategoryShare {
	counts := lo.CountValuesBy(products, func(p productDomain.Product) string { return p.Category })
	shares := lo.MapToSlice(counts, func(category string, n int) domain.CategoryShare {
		return domain.CategoryShare{
			Category:   category,
			Count:      n,
			Percentage: round2(float64(n) / float64(len(products)) * 100),
		}
	})
	slices.SortFunc(shares, func(a, b domain.CategoryShare) int {
		return cmp.Or(b.Count-a.Count, cmp.Compare(a.Category, b.Category))
	})
	if len(shares) > topCategories {
		shares = shares[:topCategories]
	}
	return shares
}

func channelPerformance(products []productDomain.Product) []domain.ChannelPerformance {
	groups := lo.GroupBy(products, func(p productDomain.Product) string { return p.Channel })
	perf := lo.MapToSlice(groups, func(channel string, ps []productDomain.Product) domain.ChannelPerformance {
		return domain.ChannelPerformance{Channel: channel, Products: len(ps), AveragePrice: averagePrice(ps)}
	})
	slices.SortFunc(perf, func(a, b domain.ChannelPerformance) int {
		return cmp.Or(b.Products-a.Products, cmp.Compare(a.Channel, b.Channel))
	})
	return perf
}

func recent(products []productDomain.Product) []productDomain.Product {
	sorted := append(make([]productDomain.Product, 0, len(products)), products...)
	slices.SortStableFunc(sorted, func(a, b productDomain.Product) int { return b.PostedAt.Compare(a.PostedAt) })
	if len(sorted) > recentProducts {
		sorted = sorted[:recentProducts]
	}
	return sorted
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
