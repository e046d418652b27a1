// Package service runs product searches against the API with an offline fallback.
package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	"github.com/reshetovitsme/product-scout/internal/modules/search/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/oops"
)

// Remote is the product search API.
type Remote interface {
	SearchProducts(ctx context.Context, query string) ([]productDomain.Product, error)
}

// Session holds the state of one search screen: the loaded result set,
// the facets applied to it, and whether a search has been run.
//
// Every search takes a generation number. When a slower, older search
// completes after a newer one was started, its result is discarded.
type Session struct {
	remote  Remote
	catalog []productDomain.Product
	logger  *slog.Logger

	mu          sync.Mutex
	generation  uint64
	results     []productDomain.Product
	facets      filter.Facets
	hasSearched bool
}

// NewSession creates a session that falls back to the sample catalog.
func NewSession(remote Remote, logger *slog.Logger) *Session {
	return NewSessionWithCatalog(remote, productDomain.SampleProducts(), logger)
}

func NewSessionWithCatalog(remote Remote, catalog []productDomain.Product, logger *slog.Logger) *Session {
	return &Session{remote: remote, catalog: catalog, logger: logger}
}

// Search loads a new result set for query. A blank query clears the results
// without calling the API. Remote failures of any kind fall back to a
// substring match over the local catalog. The error is errors.ErrSuperseded
// when a newer search started before this one finished, or the context error
// when ctx was cancelled.
func (s *Session) Search(ctx context.Context, query string) (domain.Result, error) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if query == "" {
		s.results = nil
		s.hasSearched = false
		s.mu.Unlock()
		return domain.Result{}, nil
	}
	s.hasSearched = true
	s.mu.Unlock()

	result := domain.Result{Query: query}
	products, err := s.remote.SearchProducts(ctx, query)
	switch {
	case ctx.Err() != nil:
		return domain.Result{}, oops.With("query", query).Wrap(ctx.Err())
	case err != nil:
		s.logger.Warn("Product search failed, using offline data", "query", query, "error", err)
		products = filter.Search(s.catalog, query)
		result.Fallback = true
		notice := domain.OfflineNotice
		result.Notice = &notice
	}
	if products == nil {
		products = []productDomain.Product{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return domain.Result{}, oops.With("query", query, "generation", gen).Wrap(errors.ErrSuperseded)
	}
	s.results = products
	result.Products = filter.Apply(products, s.facets)
	return result, nil
}

// SetFacets replaces the facets and returns the visible products.
func (s *Session) SetFacets(f filter.Facets) []productDomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facets = f
	return filter.Apply(s.results, f)
}

// ClearFacets removes every facet.
func (s *Session) ClearFacets() []productDomain.Product {
	return s.SetFacets(filter.Facets{})
}

// Visible is the loaded result set narrowed by the current facets.
func (s *Session) Visible() []productDomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Apply(s.results, s.facets)
}

func (s *Session) Loaded() []productDomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]productDomain.Product(nil), s.results...)
}

func (s *Session) HasSearched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSearched
}

// ActiveFilterCount is the badge number for the current facets.
func (s *Session) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facets.ActiveCount()
}
