package service

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/reshetovitsme/product-scout/internal/modules/favorites/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
)

func TestFavorites(t *testing.T) {
	s, err := New(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	tick := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Hour)
		return tick
	}

	inputs := []domain.NewFavorite{
		{Type: domain.TypeProduct, RefID: "p002", Name: "Wireless Bluetooth Earbuds", Category: "Electronics"},
		{Type: domain.TypeSupplier, RefID: "TechWholesale", Name: "TechWholesale", Category: "Electronics", Description: "Mumbai, reliable"},
		{Type: domain.TypeNote, RefID: "n1", Name: "Gaming Accessories Trend", Tags: []string{"Gaming", "Trend"}},
	}
	added := lo.Map(inputs, func(in domain.NewFavorite, _ int) *domain.Favorite {
		f, err := s.Add(in)
		if err != nil {
			t.Fatalf("add %q: %v", in.Name, err)
		}
		return f
	})

	if _, err := s.Add(inputs[0]); !errors.Is(err, errors.ErrConflict) {
		t.Errorf("duplicate err = %v, want ErrConflict", err)
	}
	if _, err := s.Add(domain.NewFavorite{Type: "deal", RefID: "x", Name: "x"}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("bad type err = %v, want ErrInvalidInput", err)
	}

	names := func(q domain.Query) []string {
		t.Helper()
		list, err := s.List(q)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		return lo.Map(list, func(f *domain.Favorite, _ int) string { return f.Name })
	}

	if diff := cmp.Diff([]string{"Gaming Accessories Trend", "TechWholesale", "Wireless Bluetooth Earbuds"}, names(domain.Query{Type: "all"})); diff != "" {
		t.Errorf("all mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"TechWholesale"}, names(domain.Query{Term: "mumbai"})); diff != "" {
		t.Errorf("term mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Gaming Accessories Trend"}, names(domain.Query{Term: "trend", Type: "note"})); diff != "" {
		t.Errorf("tag mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"TechWholesale", "Wireless Bluetooth Earbuds"}, names(domain.Query{Category: "electronics"})); diff != "" {
		t.Errorf("category mismatch (-want +got):\n%s", diff)
	}

	categories, err := s.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if diff := cmp.Diff([]string{"all", "Electronics"}, categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	if err := s.Remove(added[1].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	counts, err := s.CountByType()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	want := map[domain.Type]int{domain.TypeProduct: 1, domain.TypeSupplier: 0, domain.TypeNote: 1, domain.TypeSearch: 0}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}
