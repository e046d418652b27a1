package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	"github.com/reshetovitsme/product-scout/internal/modules/product/repository"
	"github.com/reshetovitsme/product-scout/internal/shared/database"
	scouterrors "github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "scout.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(repository.NewSQLStorage(db), logging.Discard())
}

func TestSeedAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	n, err := s.SeedSamples(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 8 {
		t.Fatalf("seeded %d, want 8", n)
	}
	if n, _ := s.SeedSamples(ctx); n != 0 {
		t.Errorf("second seed inserted %d products", n)
	}

	got, err := s.Search(ctx, "fashion", filter.Facets{PriceMax: lo.ToPtr(1000.0)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	ids := lo.Map(got, func(p domain.Product, _ int) string { return p.ID })
	if diff := cmp.Diff([]string{"p007"}, ids); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}

	all, err := s.Search(ctx, "  ", filter.Facets{})
	if err != nil {
		t.Fatalf("blank search: %v", err)
	}
	if len(all) != 8 {
		t.Errorf("blank search returned %d products, want 8", len(all))
	}
}

func TestSaveDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	p := &domain.Product{ID: "c1-1", Name: "  Steel bottles  ", Price: 120, Contact: domain.Contact{Phone: "9876500000"}}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "c1-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Steel bottles" || got.MinQuantity != 1 || got.Category != "General" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.Contact.WhatsApp != "https://wa.me/919876500000" {
		t.Errorf("WhatsApp = %q", got.Contact.WhatsApp)
	}
	if got.PostedAt.IsZero() {
		t.Error("PostedAt not set")
	}
}

func TestSaveValidation(t *testing.T) {
	s := newTestService(t)
	for _, p := range []*domain.Product{
		{ID: "", Name: "x"},
		{ID: "a", Name: " "},
		{ID: "a", Name: "x", Price: -1},
	} {
		if err := s.Save(context.Background(), p); !errors.Is(err, scouterrors.ErrInvalidInput) {
			t.Errorf("Save(%+v): got %v, want ErrInvalidInput", p, err)
		}
	}
}
