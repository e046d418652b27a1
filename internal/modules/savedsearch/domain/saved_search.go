package domain

import (
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
)

// SavedSearch is a named catalog query that can be re-run.
type SavedSearch struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Query       string    `json:"query"`
	Description string    `json:"description,omitempty"`
	Filters     Filters   `json:"filters"`
	CreatedAt   time.Time `json:"created_at"`
	LastRun     time.Time `json:"last_run,omitzero"`
	ResultCount int       `json:"result_count"`
	IsActive    bool      `json:"is_active"`
}

// Filters are the facets stored with a search. Blank fields impose no constraint.
type Filters struct {
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Category string   `json:"category,omitempty"`
	Channel  string   `json:"channel,omitempty"`
}

// Facets converts the stored filters into catalog facets.
func (f Filters) Facets() filter.Facets {
	facets := filter.Facets{PriceMin: f.PriceMin, PriceMax: f.PriceMax}
	if f.Category != "" {
		facets.Categories = []string{f.Category}
	}
	if f.Channel != "" {
		facets.Channels = []string{f.Channel}
	}
	return facets
}

// NewSavedSearch holds the fields accepted when saving a search.
type NewSavedSearch struct {
	Name        string  `json:"name"`
	Query       string  `json:"query"`
	Description string  `json:"description"`
	Filters     Filters `json:"filters"`
}
