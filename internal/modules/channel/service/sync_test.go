package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/channel/repository"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	productRepo "github.com/reshetovitsme/product-scout/internal/modules/product/repository"
	productService "github.com/reshetovitsme/product-scout/internal/modules/product/service"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/database"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
)

func TestSyncFollowsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := database.Open(ctx, config.DriverSQLite, filepath.Join(dir, "scout.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	products := productService.New(productRepo.NewSQLStorage(db), logging.Discard())

	repo, err := repository.NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	s := New(&config.Config{UpdateInterval: 60, InactiveAfterHours: 72}, repo, products, logging.Discard())
	c := &clock{t: baseTime.Add(300 * time.Millisecond)}
	s.SetClock(c.now)

	if _, err := s.Import(&domain.Channel{ID: "-1001", Name: "Deals"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	save := func(id string, price float64, posted time.Time) {
		t.Helper()
		p := &productDomain.Product{ID: id, Name: "Item " + id, Price: price, ChannelID: "-1001", Channel: "Deals", PostedAt: posted}
		if err := products.Save(ctx, p); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	sync := func() []string {
		t.Helper()
		found, err := s.SyncMessages(ctx, "-1001")
		if err != nil {
			t.Fatalf("sync: %v", err)
		}
		return lo.Map(found, func(p productDomain.Product, _ int) string { return p.ID })
	}

	save("-1001-1", 100, baseTime.Add(-time.Second))
	if diff := cmp.Diff([]string{"-1001-1"}, sync()); diff != "" {
		t.Errorf("first sync mismatch (-want +got):\n%s", diff)
	}

	// same second as the sync, and a post that arrived late with an older date
	save("-1001-2", 200, baseTime.Add(800*time.Millisecond))
	save("-1001-3", 300, baseTime.Add(-time.Hour))
	c.t = baseTime.Add(time.Second)
	if diff := cmp.Diff([]string{"-1001-3", "-1001-2"}, sync()); diff != "" {
		t.Errorf("second sync mismatch (-want +got):\n%s", diff)
	}

	// an edited post is not new
	save("-1001-2", 250, baseTime.Add(800*time.Millisecond))
	if got := sync(); len(got) != 0 {
		t.Errorf("third sync returned %v, want nothing", got)
	}

	ch, err := s.GetChannel("-1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ch.Stats.ProductsFound != 3 {
		t.Errorf("ProductsFound = %d, want 3", ch.Stats.ProductsFound)
	}
}
