package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// FacetAll is the facet value that matches everything.
const FacetAll = "all"

// Favorite bookmarks a product, supplier, note or saved search.
type Favorite struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	RefID       string    `json:"ref_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// NewFavorite holds the fields accepted when adding a favorite.
type NewFavorite struct {
	Type        Type     `json:"type"`
	RefID       string   `json:"ref_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Query narrows the favorites list. Empty or "all" imposes no constraint.
type Query struct {
	Term     string
	Type     string
	Category string
}

func (f *Favorite) Matches(q Query) bool {
	facet := func(want, got string) bool {
		return want == "" || want == FacetAll || strings.EqualFold(want, got)
	}
	if !facet(q.Type, string(f.Type)) || !facet(q.Category, f.Category) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term == "" {
		return true
	}
	fields := append([]string{f.Name, f.Category, f.Description}, f.Tags...)
	return lo.SomeBy(fields, func(v string) bool { return strings.Contains(strings.ToLower(v), term) })
}
