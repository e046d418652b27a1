package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	feedDomain "github.com/reshetovitsme/product-scout/internal/modules/feed/domain"
	feedService "github.com/reshetovitsme/product-scout/internal/modules/feed/service"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	profitDomain "github.com/reshetovitsme/product-scout/internal/modules/profit/domain"
	profitService "github.com/reshetovitsme/product-scout/internal/modules/profit/service"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

func (s *Server) registerProductRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products/search", s.handleProductSearch)
	mux.HandleFunc("GET /api/products/{id}", s.handleProductGet)
	mux.HandleFunc("GET /api/mock/products/search", s.handleMockSearch)
	mux.HandleFunc("POST /api/profit", s.handleProfit)
}

// facetsFromQuery reads priceMin, priceMax, minQuantity and the repeated
// category and channel parameters.
func facetsFromQuery(r *http.Request) (filter.Facets, error) {
	q := r.URL.Query()
	return filter.Parse(q.Get("priceMin"), q.Get("priceMax"), q.Get("minQuantity"), q["category"], q["channel"])
}

func (s *Server) handleProductSearch(w http.ResponseWriter, r *http.Request) {
	facets, err := facetsFromQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	products, err := s.svc.Products.Search(r.Context(), r.URL.Query().Get("query"), facets)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, products)
}

func (s *Server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	product, err := s.svc.Products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, product)
}

// handleMockSearch serves the fixed mock catalog as a bare array after the
// configured delay.
func (s *Server) handleMockSearch(w http.ResponseWriter, r *http.Request) {
	timer := time.NewTimer(s.cfg.MockSearchDelay())
	defer timer.Stop()
	select {
	case <-r.Context().Done():
		return
	case <-timer.C:
	}

	products := productDomain.MockSearchProducts()
	if query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query"))); query != "" {
		products = lo.Filter(products, func(p productDomain.Product, _ int) bool {
			return strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Category), query)
		})
	}
	s.writeJSON(w, http.StatusOK, products)
}

type profitRequest struct {
	Price float64 `json:"price"`
	profitDomain.Costs
}

func (s *Server) handleProfit(w http.ResponseWriter, r *http.Request) {
	var req profitRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	estimate, err := profitService.Calculate(req.Price, req.Costs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, estimate)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("channelID")

	format := feedDomain.FormatRss
	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, err := feedDomain.ParseFormat(raw)
		if err != nil {
			s.fail(w, r, oops.With("format", raw).Wrap(errors.ErrInvalidInput))
			return
		}
		format = parsed
	}

	// Get base URL from request
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed, err := s.svc.Feed.GenerateFeed(r.Context(), channelID, baseURL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := feedService.Render(feed, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

// intParam reads an optional positive integer query parameter.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, oops.With("param", name, "value", raw).Wrapf(errors.ErrInvalidInput, "%s must be a positive integer", name)
	}
	return n, nil
}
