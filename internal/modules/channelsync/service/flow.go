package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// API is the remote side of the sync flow.
type API interface {
	JoinedChannels(ctx context.Context) ([]domain.JoinedChannel, error)
	SaveChannels(ctx context.Context, channels []domain.JoinedChannel) error
	SyncMessages(ctx context.Context, channelID string) ([]productDomain.Product, error)
}

// Flow is the client side of channel sync: it holds the fetched joined
// channels, a selection of telegram ids and the set of syncs in flight.
type Flow struct {
	api    API
	logger *slog.Logger

	mu       sync.Mutex
	channels []domain.JoinedChannel
	selected map[string]struct{}
	syncing  map[string]struct{}
}

func NewFlow(api API, logger *slog.Logger) *Flow {
	return &Flow{
		api:      api,
		logger:   logger,
		selected: make(map[string]struct{}),
		syncing:  make(map[string]struct{}),
	}
}

// Fetch replaces the loaded channels with the remote list. Selected ids
// that are no longer listed are dropped.
func (f *Flow) Fetch(ctx context.Context) ([]domain.JoinedChannel, error) {
	channels, err := f.api.JoinedChannels(ctx)
	if err != nil {
		return nil, oops.With("context", "failed to fetch joined channels").Wrap(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = channels
	for id := range f.selected {
		if _, ok := f.find(id); !ok {
			delete(f.selected, id)
		}
	}
	return slices.Clone(channels), nil
}

// Visible returns the loaded channels matching opts.
func (f *Flow) Visible(opts domain.ListOptions) []domain.JoinedChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Select(f.channels, opts)
}

// Toggle adds an id to the selection or removes it. It reports whether the id is now selected.
func (f *Flow) Toggle(telegramID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.selected[telegramID]; ok {
		delete(f.selected, telegramID)
		return false
	}
	f.selected[telegramID] = struct{}{}
	return true
}

// Select adds ids to the selection. Unknown ids are rejected.
func (f *Flow) Select(telegramIDs ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range telegramIDs {
		if _, ok := f.find(id); !ok {
			return oops.With("telegram_id", id).Wrapf(errors.ErrNotFound, "channel is not in the joined list")
		}
	}
	for _, id := range telegramIDs {
		f.selected[id] = struct{}{}
	}
	return nil
}

// SelectAll selects every channel in channels.
func (f *Flow) SelectAll(channels []domain.JoinedChannel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range channels {
		f.selected[j.TelegramID] = struct{}{}
	}
}

func (f *Flow) ClearSelection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.selected)
}

// Selected returns the selected ids in sorted order.
func (f *Flow) Selected() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := lo.Keys(f.selected)
	slices.Sort(ids)
	return ids
}

// SaveSelected posts the selection. On failure the selection is kept and
// nothing is marked saved. On success the channels are marked saved and the
// selection is cleared.
func (f *Flow) SaveSelected(ctx context.Context) error {
	f.mu.Lock()
	batch := lo.Filter(f.channels, func(j domain.JoinedChannel, _ int) bool {
		_, ok := f.selected[j.TelegramID]
		return ok
	})
	f.mu.Unlock()

	if len(batch) == 0 {
		return oops.Wrap(errors.ErrNothingSelected)
	}
	if err := f.api.SaveChannels(ctx, batch); err != nil {
		f.logger.Error("Failed to save channels", "count", len(batch), "error", err)
		return oops.With("count", len(batch)).Wrap(err)
	}

	ids := lo.Map(batch, func(j domain.JoinedChannel, _ int) string { return j.TelegramID })
	f.mu.Lock()
	f.markSaved(ids)
	for _, id := range ids {
		delete(f.selected, id)
	}
	f.mu.Unlock()

	f.logger.Info("Channels saved", "count", len(batch))
	return nil
}

// SaveOne saves a single loaded channel, leaving the selection alone.
func (f *Flow) SaveOne(ctx context.Context, telegramID string) error {
	f.mu.Lock()
	j, ok := f.find(telegramID)
	f.mu.Unlock()
	if !ok {
		return oops.With("telegram_id", telegramID).Wrapf(errors.ErrNotFound, "channel is not in the joined list")
	}

	if err := f.api.SaveChannels(ctx, []domain.JoinedChannel{j}); err != nil {
		return oops.With("telegram_id", telegramID).Wrap(err)
	}

	f.mu.Lock()
	f.markSaved([]string{telegramID})
	f.mu.Unlock()
	return nil
}

// Sync fetches the products a managed channel received since its last sync.
// A second sync of the same channel while one is running fails with errors.ErrConflict.
func (f *Flow) Sync(ctx context.Context, channelID string) ([]productDomain.Product, error) {
	f.mu.Lock()
	if _, busy := f.syncing[channelID]; busy {
		f.mu.Unlock()
		return nil, oops.With("channel_id", channelID).Wrapf(errors.ErrConflict, "channel sync already in progress")
	}
	f.syncing[channelID] = struct{}{}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.syncing, channelID)
		f.mu.Unlock()
	}()

	products, err := f.api.SyncMessages(ctx, channelID)
	if err != nil {
		return nil, oops.With("channel_id", channelID).Wrap(err)
	}
	return products, nil
}

// IsSyncing reports whether a sync of the channel is in flight.
func (f *Flow) IsSyncing(channelID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.syncing[channelID]
	return ok
}

func (f *Flow) find(telegramID string) (domain.JoinedChannel, bool) {
	return lo.Find(f.channels, func(j domain.JoinedChannel) bool {
		return j.TelegramID == telegramID
	})
}

func (f *Flow) markSaved(ids []string) {
	for i := range f.channels {
		if lo.Contains(ids, f.channels[i].TelegramID) {
			f.channels[i].IsSaved = true
		}
	}
}
