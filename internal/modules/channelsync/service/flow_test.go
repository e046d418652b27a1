package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type fakeAPI struct {
	mu       sync.Mutex
	channels []domain.JoinedChannel
	saveErr  error
	saved    [][]string
	// release blocks SyncMessages until closed when set
	release chan struct{}
	started chan struct{}
}

func (f *fakeAPI) JoinedChannels(context.Context) ([]domain.JoinedChannel, error) {
	return f.channels, nil
}

func (f *fakeAPI) SaveChannels(_ context.Context, channels []domain.JoinedChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, lo.Map(channels, func(j domain.JoinedChannel, _ int) string { return j.TelegramID }))
	return f.saveErr
}

func (f *fakeAPI) SyncMessages(ctx context.Context, channelID string) ([]productDomain.Product, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []productDomain.Product{{ID: channelID + "-1", Name: "Item"}}, nil
}

func newFlow(t *testing.T, api *fakeAPI) *Flow {
	t.Helper()
	api.channels = []domain.JoinedChannel{
		{TelegramID: "-1001", ChannelID: "@a", ChannelName: "A", Members: 10},
		{TelegramID: "-1002", ChannelID: "@b", ChannelName: "B", Members: 30},
		{TelegramID: "-1003", ChannelID: "@c", ChannelName: "C", Members: 20},
	}
	f := NewFlow(api, logging.Discard())
	if _, err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	return f
}

func TestSaveSelectedSuccess(t *testing.T) {
	api := &fakeAPI{}
	f := newFlow(t, api)

	if err := f.Select("-1003", "-1001"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := f.SaveSelected(context.Background()); err != nil {
		t.Fatalf("save selected: %v", err)
	}

	if diff := cmp.Diff([][]string{{"-1001", "-1003"}}, api.saved); diff != "" {
		t.Errorf("posted batch mismatch (-want +got):\n%s", diff)
	}
	if len(f.Selected()) != 0 {
		t.Errorf("selection not cleared: %v", f.Selected())
	}
	savedIDs := lo.FilterMap(f.Visible(domain.ListOptions{}), func(j domain.JoinedChannel, _ int) (string, bool) {
		return j.TelegramID, j.IsSaved
	})
	if diff := cmp.Diff([]string{"-1003", "-1001"}, savedIDs); diff != "" {
		t.Errorf("saved flags mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveSelectedFailureKeepsSelection(t *testing.T) {
	api := &fakeAPI{saveErr: oops.Wrap(errors.ErrUpstream)}
	f := newFlow(t, api)

	f.Toggle("-1002")
	err := f.SaveSelected(context.Background())
	if !errors.Is(err, errors.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if diff := cmp.Diff([]string{"-1002"}, f.Selected()); diff != "" {
		t.Errorf("selection changed (-want +got):\n%s", diff)
	}
	if lo.SomeBy(f.Visible(domain.ListOptions{}), func(j domain.JoinedChannel) bool { return j.IsSaved }) {
		t.Error("a channel was marked saved after a failed save")
	}
	if len(api.saved) != 1 {
		t.Errorf("save attempted %d times, want exactly 1", len(api.saved))
	}
}

func TestSaveSelectedEmpty(t *testing.T) {
	api := &fakeAPI{}
	f := newFlow(t, api)

	if err := f.SaveSelected(context.Background()); !errors.Is(err, errors.ErrNothingSelected) {
		t.Errorf("err = %v, want ErrNothingSelected", err)
	}
	if len(api.saved) != 0 {
		t.Error("empty selection reached the API")
	}
}

func TestSelectionOperations(t *testing.T) {
	f := newFlow(t, &fakeAPI{})

	if !f.Toggle("-1001") || f.Toggle("-1001") {
		t.Error("toggle twice should select then deselect")
	}
	if err := f.Select("-9999"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	f.SelectAll(f.Visible(domain.ListOptions{}))
	if diff := cmp.Diff([]string{"-1001", "-1002", "-1003"}, f.Selected()); diff != "" {
		t.Errorf("select all mismatch (-want +got):\n%s", diff)
	}
	f.ClearSelection()
	if len(f.Selected()) != 0 {
		t.Error("selection not cleared")
	}
}

func TestSaveOne(t *testing.T) {
	api := &fakeAPI{}
	f := newFlow(t, api)
	f.Toggle("-1001")

	if err := f.SaveOne(context.Background(), "-1002"); err != nil {
		t.Fatalf("save one: %v", err)
	}
	if diff := cmp.Diff([][]string{{"-1002"}}, api.saved); diff != "" {
		t.Errorf("posted batch mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-1001"}, f.Selected()); diff != "" {
		t.Errorf("selection should be untouched (-want +got):\n%s", diff)
	}
}

func TestSyncInFlightConflict(t *testing.T) {
	api := &fakeAPI{release: make(chan struct{}), started: make(chan struct{}, 1)}
	f := newFlow(t, api)

	done := make(chan error, 1)
	go func() {
		_, err := f.Sync(context.Background(), "-1001")
		done <- err
	}()
	<-api.started

	if !f.IsSyncing("-1001") {
		t.Error("channel should be marked as syncing")
	}
	if _, err := f.Sync(context.Background(), "-1001"); !errors.Is(err, errors.ErrConflict) {
		t.Errorf("second sync err = %v, want ErrConflict", err)
	}

	close(api.release)
	if err := <-done; err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if f.IsSyncing("-1001") {
		t.Error("channel still marked as syncing")
	}

	api.started = nil
	products, err := f.Sync(context.Background(), "-1001")
	if err != nil {
		t.Fatalf("sync after completion: %v", err)
	}
	if len(products) != 1 || products[0].ID != "-1001-1" {
		t.Errorf("unexpected products: %+v", products)
	}
}
