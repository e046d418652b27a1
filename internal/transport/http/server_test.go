package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/gofeed"
	alertService "github.com/reshetovitsme/product-scout/internal/modules/alerts/service"
	analyticsService "github.com/reshetovitsme/product-scout/internal/modules/analytics/service"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/product-scout/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/product-scout/internal/modules/channel/service"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	syncRepo "github.com/reshetovitsme/product-scout/internal/modules/channelsync/repository"
	syncService "github.com/reshetovitsme/product-scout/internal/modules/channelsync/service"
	contactService "github.com/reshetovitsme/product-scout/internal/modules/contacts/service"
	favoriteService "github.com/reshetovitsme/product-scout/internal/modules/favorites/service"
	feedService "github.com/reshetovitsme/product-scout/internal/modules/feed/service"
	messageRepo "github.com/reshetovitsme/product-scout/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/product-scout/internal/modules/message/service"
	noteService "github.com/reshetovitsme/product-scout/internal/modules/notes/service"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	productRepo "github.com/reshetovitsme/product-scout/internal/modules/product/repository"
	productService "github.com/reshetovitsme/product-scout/internal/modules/product/service"
	savedSearchService "github.com/reshetovitsme/product-scout/internal/modules/savedsearch/service"
	taggingService "github.com/reshetovitsme/product-scout/internal/modules/tagging/service"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/database"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, Services) {
	t.Helper()
	dir := t.TempDir()
	logger := logging.Discard()
	cfg := &config.Config{HTTPPort: "0", UpdateInterval: 60, InactiveAfterHours: 72}

	db, err := database.Open(context.Background(), config.DriverSQLite, filepath.Join(dir, "scout.db"))
	check(t, err)
	t.Cleanup(func() { _ = db.Close() })

	products := productService.New(productRepo.NewSQLStorage(db), logger)
	chRepo, err := channelRepo.NewFileStorage(dir)
	check(t, err)
	channels := channelService.New(cfg, chRepo, products, logger)
	msgRepo, err := messageRepo.NewFileStorage(dir)
	check(t, err)
	jRepo, err := syncRepo.NewFileStorage(dir)
	check(t, err)

	svc := Services{
		Products:  products,
		Channels:  channels,
		Joined:    syncService.New(jRepo, channels, logger),
		Messages:  messageService.New(msgRepo),
		Feed:      feedService.New(channels, products),
		Analytics: analyticsService.New(products, channels),
	}
	svc.Notes, err = noteService.New(dir, logger)
	check(t, err)
	svc.Alerts, err = alertService.New(dir, logger)
	check(t, err)
	svc.Tagging, err = taggingService.New(dir, products, logger)
	check(t, err)
	svc.SavedSearches, err = savedSearchService.New(dir, products, logger)
	check(t, err)
	svc.Favorites, err = favoriteService.New(dir, logger)
	check(t, err)
	svc.Contacts, err = contactService.New(dir, logger)
	check(t, err)

	srv := httptest.NewServer(New(cfg, svc, logger).Handler())
	t.Cleanup(srv.Close)
	return srv, svc
}

type response[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func call[T any](t *testing.T, method, url string, body any) (int, response[T]) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out response[T]
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode, out
}

func ids(products []productDomain.Product) []string {
	return lo.Map(products, func(p productDomain.Product, _ int) string { return p.ID })
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"ok"`) {
		t.Errorf("health = %d %s", resp.StatusCode, body)
	}
}

func TestProductSearch(t *testing.T) {
	srv, svc := newTestServer(t)
	if _, err := svc.Products.SeedSamples(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	status, got := call[[]productDomain.Product](t, http.MethodGet, srv.URL+"/api/products/search?query=electronics&priceMax=1000", nil)
	if status != http.StatusOK || got.Status != "success" {
		t.Fatalf("search = %d %+v", status, got)
	}
	if diff := cmp.Diff([]string{"p002", "p006"}, ids(got.Data)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	status, got = call[[]productDomain.Product](t, http.MethodGet, srv.URL+"/api/products/search?query=x&priceMin=abc", nil)
	if status != http.StatusBadRequest || got.Status != "error" || got.Message == "" {
		t.Errorf("bad facet = %d %+v", status, got)
	}

	status, _ = call[productDomain.Product](t, http.MethodGet, srv.URL+"/api/products/nope", nil)
	if status != http.StatusNotFound {
		t.Errorf("missing product status = %d", status)
	}
}

func TestMockSearch(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/mock/products/search?query=watch")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var products []productDomain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode bare array: %v", err)
	}
	if diff := cmp.Diff([]string{"api002"}, ids(products)); diff != "" {
		t.Errorf("mock results mismatch (-want +got):\n%s", diff)
	}
}

func TestChannelManager(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/api/channels"

	status, _ := call[channelDomain.Channel](t, http.MethodPost, base, channelDomain.NewChannel{Name: "Deals"})
	if status != http.StatusBadRequest {
		t.Errorf("add without invite link = %d, want 400", status)
	}

	status, added := call[channelDomain.Channel](t, http.MethodPost, base, channelDomain.NewChannel{Name: "Deals", InviteLink: "https://t.me/deals"})
	if status != http.StatusCreated {
		t.Fatalf("add = %d %+v", status, added)
	}
	id := added.Data.ID

	_, toggled := call[channelDomain.Channel](t, http.MethodPost, base+"/"+id+"/toggle", nil)
	if toggled.Data.Status != channelDomain.StatusPaused {
		t.Errorf("after one toggle status = %q", toggled.Data.Status)
	}
	_, toggled = call[channelDomain.Channel](t, http.MethodPost, base+"/"+id+"/toggle", nil)
	if toggled.Data.Status != channelDomain.StatusActive {
		t.Errorf("after two toggles status = %q", toggled.Data.Status)
	}

	status, filtered := call[channelDomain.Channel](t, http.MethodPost, base+"/"+id+"/filters", filterRequest{Type: channelDomain.FilterTypeKeywords, Keywords: []string{"wholesale"}})
	if status != http.StatusCreated || len(filtered.Data.Filters) != 1 {
		t.Errorf("add filter = %d %+v", status, filtered.Data.Filters)
	}
	status, _ = call[channelDomain.Channel](t, http.MethodDelete, base+"/"+id+"/filters/5", nil)
	if status != http.StatusBadRequest {
		t.Errorf("remove missing filter = %d, want 400", status)
	}

	_, facets := call[channelDomain.Facets](t, http.MethodGet, base+"/facets", nil)
	if diff := cmp.Diff([]string{"all", "General"}, facets.Data.Categories); diff != "" {
		t.Errorf("category facets mismatch (-want +got):\n%s", diff)
	}

	if status, _ := call[any](t, http.MethodDelete, base+"/"+id, nil); status != http.StatusNoContent {
		t.Errorf("delete = %d", status)
	}
	if status, _ := call[channelDomain.Channel](t, http.MethodGet, base+"/"+id, nil); status != http.StatusNotFound {
		t.Errorf("get deleted = %d, want 404", status)
	}
}

func TestJoinedChannelsSaveAndSync(t *testing.T) {
	srv, svc := newTestServer(t)
	joined := syncDomain.JoinedChannel{
		ChannelID:   "@techwholesale",
		ChannelName: "TechWholesale",
		TelegramID:  "-1001",
		Members:     1200,
		Tags:        []string{"electronics"},
	}
	if _, err := svc.Joined.Register(joined); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, listed := call[[]syncDomain.JoinedChannel](t, http.MethodGet, srv.URL+"/api/channels/list?query=tech&sort=name", nil)
	if len(listed.Data) != 1 || listed.Data[0].IsSaved {
		t.Fatalf("joined list = %+v", listed.Data)
	}

	status, empty := call[any](t, http.MethodPost, srv.URL+"/api/channels/save", saveRequest{})
	if status != http.StatusBadRequest || empty.Status != "error" {
		t.Errorf("empty save = %d %+v", status, empty)
	}

	status, saved := call[[]channelDomain.Channel](t, http.MethodPost, srv.URL+"/api/channels/save", saveRequest{Channels: listed.Data})
	if status != http.StatusOK || saved.Message != "1 channels saved" {
		t.Fatalf("save = %d %+v", status, saved)
	}

	_, savedList := call[[]channelDomain.Channel](t, http.MethodGet, srv.URL+"/api/channels/saved/list", nil)
	if len(savedList.Data) != 1 || savedList.Data[0].ID != "-1001" {
		t.Errorf("saved list = %+v", savedList.Data)
	}

	posted := time.Now().UTC().Add(time.Minute).Truncate(time.Second)
	if err := svc.Products.Save(context.Background(), &productDomain.Product{
		ID: "-1001-9", Name: "USB Hub", Price: 350, ChannelID: "-1001", Channel: "TechWholesale", PostedAt: posted,
	}); err != nil {
		t.Fatalf("save product: %v", err)
	}

	status, synced := call[[]productDomain.Product](t, http.MethodGet, srv.URL+"/api/channels/-1001/messages/sync", nil)
	if status != http.StatusOK {
		t.Fatalf("sync = %d %+v", status, synced)
	}
	if diff := cmp.Diff([]string{"-1001-9"}, ids(synced.Data)); diff != "" {
		t.Errorf("synced mismatch (-want +got):\n%s", diff)
	}

	status, _ = call[any](t, http.MethodGet, srv.URL+"/api/channels/-404/messages/sync", nil)
	if status != http.StatusNotFound {
		t.Errorf("sync unknown channel = %d, want 404", status)
	}
}

func TestFeedEndpoint(t *testing.T) {
	srv, svc := newTestServer(t)
	if _, err := svc.Channels.Import(&channelDomain.Channel{ID: "-1001", Name: "TechWholesale", Username: "techwholesale"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := svc.Products.Save(context.Background(), &productDomain.Product{
		ID: "-1001-1", Name: "Power Bank", Price: 650, ChannelID: "-1001", Channel: "TechWholesale",
	}); err != nil {
		t.Fatalf("save product: %v", err)
	}

	resp, err := http.Get(srv.URL + "/rss/-1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("content type = %q", ct)
	}
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(feed.Items) != 1 || !strings.HasPrefix(feed.Items[0].Title, "Power Bank") {
		t.Errorf("items = %+v", feed.Items)
	}

	missing, err := http.Get(srv.URL + "/rss/-404")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown channel feed = %d", missing.StatusCode)
	}

	bad, err := http.Get(srv.URL + "/rss/-1001?format=csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown format = %d", bad.StatusCode)
	}
}

func TestProfit(t *testing.T) {
	srv, _ := newTestServer(t)

	status, got := call[struct {
		Profit float64 `json:"profit"`
		Margin float64 `json:"margin"`
		Rating string  `json:"rating"`
	}](t, http.MethodPost, srv.URL+"/api/profit", map[string]float64{"price": 1000, "shipping": 50, "platform_fee": 100, "marketing": 50})
	if status != http.StatusOK {
		t.Fatalf("profit = %d", status)
	}
	if got.Data.Profit != 800 || got.Data.Margin != 80 || got.Data.Rating != "excellent" {
		t.Errorf("estimate = %+v", got.Data)
	}

	status, _ = call[any](t, http.MethodPost, srv.URL+"/api/profit", map[string]float64{"price": -1})
	if status != http.StatusBadRequest {
		t.Errorf("negative price = %d, want 400", status)
	}
}

func TestWorkspaceRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	status, _ := call[any](t, http.MethodPost, srv.URL+"/api/notes", map[string]string{"title": "No content"})
	if status != http.StatusBadRequest {
		t.Errorf("note without content = %d, want 400", status)
	}
	status, note := call[struct{ ID string }](t, http.MethodPost, srv.URL+"/api/notes", map[string]string{"title": "Diwali stock", "content": "Order lights early", "tags": "festive, lights"})
	if status != http.StatusCreated || note.Data.ID == "" {
		t.Fatalf("create note = %d %+v", status, note)
	}
	_, starred := call[struct{ Starred bool }](t, http.MethodPost, srv.URL+"/api/notes/"+note.Data.ID+"/star", nil)
	if !starred.Data.Starred {
		t.Error("note should be starred")
	}

	status, _ = call[any](t, http.MethodPost, srv.URL+"/api/tag-rules", map[string]string{"name": "Cheap", "condition": "price <", "tags": "budget"})
	if status != http.StatusBadRequest {
		t.Errorf("bad condition = %d, want 400", status)
	}

	status, _ = call[any](t, http.MethodPost, srv.URL+"/api/favorites", map[string]string{"type": "product", "ref_id": "p001", "name": "T-Shirts"})
	if status != http.StatusCreated {
		t.Errorf("add favorite = %d", status)
	}
	status, _ = call[any](t, http.MethodPost, srv.URL+"/api/favorites", map[string]string{"type": "product", "ref_id": "p001", "name": "T-Shirts"})
	if status != http.StatusConflict {
		t.Errorf("duplicate favorite = %d, want 409", status)
	}

	_, extracted := call[struct {
		Phones []string `json:"phones"`
		Emails []string `json:"emails"`
	}](t, http.MethodPost, srv.URL+"/api/contacts/extract", extractRequest{Text: "Call 98765 43210 or mail sales@example.com"})
	if len(extracted.Data.Phones) != 1 || len(extracted.Data.Emails) != 1 {
		t.Errorf("extraction = %+v", extracted.Data)
	}

	status, _ = call[any](t, http.MethodGet, srv.URL+"/api/analytics?range=1y", nil)
	if status != http.StatusBadRequest {
		t.Errorf("unknown range = %d, want 400", status)
	}
	status, _ = call[any](t, http.MethodGet, srv.URL+"/api/alerts?type=bogus", nil)
	if status != http.StatusBadRequest {
		t.Errorf("unknown alert type = %d, want 400", status)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{oops.Wrap(errors.ErrNotFound), http.StatusNotFound},
		{errors.ErrChannelNotFound, http.StatusNotFound},
		{errors.ErrInvalidFilter, http.StatusBadRequest},
		{errors.ErrNothingSelected, http.StatusBadRequest},
		{oops.With("channel_id", "1").Wrap(errors.ErrConflict), http.StatusConflict},
		{fmt.Errorf("search: %w", errors.ErrUpstream), http.StatusBadGateway},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	srv := New(&config.Config{HTTPPort: "0"}, Services{}, logging.Discard())
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("start after shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server started listening after shutdown")
	}
}
