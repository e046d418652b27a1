// Package filter narrows a loaded product list with search facets.
// Every function here is pure: the input slice is never modified and the
// result keeps the input order.
package filter

import (
	"strconv"
	"strings"

	"github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/money"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Facets constrain a product list. A nil bound or an empty list imposes no constraint.
type Facets struct {
	PriceMin    *float64 `json:"priceMin,omitempty"`
	PriceMax    *float64 `json:"priceMax,omitempty"`
	MinQuantity *int     `json:"minQuantity,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Channels    []string `json:"channels,omitempty"`
}

// Parse builds facets from raw form values. Blank values are left unset.
func Parse(priceMin, priceMax, minQuantity string, categories, channels []string) (Facets, error) {
	var f Facets

	parsePrice := func(name, raw string) (*float64, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		v, err := money.ParseAmount(raw)
		if err != nil {
			return nil, oops.With("facet", name, "value", raw).Wrap(errors.ErrInvalidFilter)
		}
		return &v, nil
	}

	var err error
	if f.PriceMin, err = parsePrice("priceMin", priceMin); err != nil {
		return Facets{}, err
	}
	if f.PriceMax, err = parsePrice("priceMax", priceMax); err != nil {
		return Facets{}, err
	}

	if raw := strings.TrimSpace(minQuantity); raw != "" {
		qty, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return Facets{}, oops.With("facet", "minQuantity", "value", raw).Wrap(errors.ErrInvalidFilter)
		}
		f.MinQuantity = &qty
	}

	f.Categories = compact(categories)
	f.Channels = compact(channels)
	return f, nil
}

func compact(values []string) []string {
	out := lo.Compact(lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) }))
	if len(out) == 0 {
		return nil
	}
	return out
}

// Apply returns the products that satisfy every facet.
func Apply(products []domain.Product, f Facets) []domain.Product {
	return lo.Filter(products, func(p domain.Product, _ int) bool {
		return f.Matches(p)
	})
}

func (f Facets) Matches(p domain.Product) bool {
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.MinQuantity != nil && p.MinQuantity < *f.MinQuantity {
		return false
	}
	if len(f.Categories) > 0 && !lo.Contains(f.Categories, p.Category) {
		return false
	}
	if len(f.Channels) > 0 && !lo.Contains(f.Channels, p.Channel) {
		return false
	}
	return true
}

// ActiveCount is the number shown on the filter badge.
func (f Facets) ActiveCount() int {
	count := len(f.Categories) + len(f.Channels)
	for _, set := range []bool{f.PriceMin != nil, f.PriceMax != nil, f.MinQuantity != nil} {
		if set {
			count++
		}
	}
	return count
}

// IsZero reports whether no facet is set.
func (f Facets) IsZero() bool {
	return f.ActiveCount() == 0
}

// MatchQuery is a case-insensitive substring match over name, category and channel.
func MatchQuery(p domain.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Channel), q)
}

// Search keeps the products matching query, in order.
func Search(products []domain.Product, query string) []domain.Product {
	return lo.Filter(products, func(p domain.Product, _ int) bool {
		return MatchQuery(p, query)
	})
}
