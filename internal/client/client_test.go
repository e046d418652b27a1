package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	searchService "github.com/reshetovitsme/product-scout/internal/modules/search/service"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, logging.Discard())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSearchProducts(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathSearch {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("query")
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data":   []productDomain.Product{{ID: "p1", Name: "Smart Watch"}},
		})
	})

	products, err := c.SearchProducts(context.Background(), "smart watch")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotQuery != "smart watch" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("products = %+v", products)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   error
	}{
		{"server error", http.StatusInternalServerError, map[string]string{"status": "error", "message": "boom"}, errors.ErrUpstream},
		{"not found", http.StatusNotFound, map[string]string{"status": "error", "message": "channel not found"}, errors.ErrNotFound},
		{"conflict", http.StatusConflict, map[string]string{"status": "error"}, errors.ErrConflict},
		{"bad request", http.StatusBadRequest, map[string]string{"status": "error"}, errors.ErrInvalidInput},
		{"error status with 200", http.StatusOK, map[string]string{"status": "error", "message": "nope"}, errors.ErrUpstream},
		{"not json", http.StatusOK, "plain text", errors.ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.SyncMessages(context.Background(), "-1001")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, logging.Discard())
	if _, err := c.JoinedChannels(context.Background()); !errors.Is(err, errors.ErrUpstream) {
		t.Errorf("err = %v, want upstream", err)
	}
}

func TestSaveChannels(t *testing.T) {
	var got struct {
		Channels []syncDomain.JoinedChannel `json:"channels"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != pathSave {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "1 channels saved", "data": []any{}})
	})

	channels := []syncDomain.JoinedChannel{{ChannelID: "@deals", ChannelName: "Deals", TelegramID: "-1001", Tags: []string{}}}
	if err := c.SaveChannels(context.Background(), channels); err != nil {
		t.Fatalf("save: %v", err)
	}
	gotIDs := lo.Map(got.Channels, func(j syncDomain.JoinedChannel, _ int) string { return j.TelegramID })
	if diff := cmp.Diff([]string{"-1001"}, gotIDs); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestSyncMessagesPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/channels/-1001/messages/sync" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": []productDomain.Product{{ID: "-1001-4"}}})
	})

	products, err := c.SyncMessages(context.Background(), "-1001")
	if err != nil || len(products) != 1 {
		t.Fatalf("sync = %+v, %v", products, err)
	}
}

func TestMockSearchProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, productDomain.MockSearchProducts())
	})

	products, err := c.MockSearchProducts(context.Background(), "")
	if err != nil {
		t.Fatalf("mock search: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("products = %d, want 2", len(products))
	}
}

func TestSessionFallsBackWhenAPIFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"status": "error"})
	})
	session := searchService.NewSession(c, logging.Discard())

	result, err := session.Search(context.Background(), "earbuds")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !result.Fallback || result.Notice == nil {
		t.Errorf("result should come from the offline catalog: %+v", result)
	}
	ids := lo.Map(result.Products, func(p productDomain.Product, _ int) string { return p.ID })
	if diff := cmp.Diff([]string{"p002"}, ids); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}
