package service

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/product-scout/internal/modules/channel/repository"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// ProductSource lists the products stored for a channel after a cursor.
type ProductSource interface {
	AddedSince(ctx context.Context, channelID string, cursor int64) ([]productDomain.Product, int64, error)
}

// Service handles channel business logic
type Service struct {
	cfg      *config.Config
	repo     channelRepo.Repository
	products ProductSource
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	syncing map[string]struct{}
	lastID  int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new channel service
func New(cfg *config.Config, repo channelRepo.Repository, products ProductSource, logger *slog.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		cfg:      cfg,
		repo:     repo,
		products: products,
		logger:   logger,
		now:      time.Now,
		syncing:  make(map[string]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Add registers a channel entered by hand. Name and invite link are required.
func (s *Service) Add(input domain.NewChannel) (*domain.Channel, error) {
	name := strings.TrimSpace(input.Name)
	link := strings.TrimSpace(input.InviteLink)
	if name == "" || link == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "channel name and invite link are required")
	}

	platform := lo.Ternary(input.Platform == "", domain.PlatformTelegram, input.Platform)
	if !platform.IsValid() {
		return nil, oops.With("platform", input.Platform).Wrapf(errors.ErrInvalidInput, "unknown platform")
	}
	kind := lo.Ternary(input.Type == "", domain.TypePublic, input.Type)
	if !kind.IsValid() {
		return nil, oops.With("type", input.Type).Wrapf(errors.ErrInvalidInput, "unknown channel type")
	}

	now := s.now()
	channel := &domain.Channel{
		ID:            s.nextID(now),
		Name:          name,
		Platform:      platform,
		Type:          kind,
		Category:      lo.CoalesceOrEmpty(strings.TrimSpace(input.Category), domain.DefaultCategory),
		Status:        domain.StatusActive,
		LastActivity:  now,
		TopProduct:    domain.NoTopProduct,
		JoinedAt:      now,
		InviteLink:    link,
		Tag:           strings.TrimSpace(input.Tag),
		SyncFrequency: domain.DefaultSyncFrequency,
		Filters:       []domain.Filter{},
	}
	if err := s.repo.SaveChannel(channel); err != nil {
		return nil, err
	}

	s.logger.Info("Channel added", "channel_id", channel.ID, "name", channel.Name, "platform", channel.Platform)
	return channel, nil
}

// nextID returns the current Unix milliseconds, bumped when two channels are
// added within the same millisecond.
func (s *Service) nextID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// Import stores a channel discovered elsewhere (the joined-channel list or
// the bot). An existing channel keeps its status, stats and filters.
func (s *Service) Import(channel *domain.Channel) (*domain.Channel, error) {
	if channel.ID == "" || strings.TrimSpace(channel.Name) == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "channel id and name are required")
	}

	existing, err := s.repo.GetChannel(channel.ID)
	switch {
	case err == nil:
		existing.Name = channel.Name
		existing.Username = lo.CoalesceOrEmpty(channel.Username, existing.Username)
		existing.Members = lo.Ternary(channel.Members > 0, channel.Members, existing.Members)
		existing.InviteLink = lo.CoalesceOrEmpty(channel.InviteLink, existing.InviteLink)
		if err := s.repo.SaveChannel(existing); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.IsNotFound(err):
		return nil, err
	}

	now := s.now()
	imported := *channel
	imported.Platform = lo.CoalesceOrEmpty(imported.Platform, domain.PlatformTelegram)
	imported.Type = lo.CoalesceOrEmpty(imported.Type, domain.TypePublic)
	imported.Category = lo.CoalesceOrEmpty(imported.Category, domain.DefaultCategory)
	imported.Status = lo.CoalesceOrEmpty(imported.Status, domain.StatusActive)
	imported.SyncFrequency = lo.CoalesceOrEmpty(imported.SyncFrequency, domain.DefaultSyncFrequency)
	imported.TopProduct = lo.CoalesceOrEmpty(imported.TopProduct, domain.NoTopProduct)
	if imported.JoinedAt.IsZero() {
		imported.JoinedAt = now
	}
	if imported.LastActivity.IsZero() {
		imported.LastActivity = now
	}
	if imported.Filters == nil {
		imported.Filters = []domain.Filter{}
	}
	if err := s.repo.SaveChannel(&imported); err != nil {
		return nil, err
	}

	s.logger.Info("Channel imported", "channel_id", imported.ID, "name", imported.Name)
	return &imported, nil
}

// Toggle flips an active channel to paused and a paused one to active.
// Inactive channels cannot be toggled; a new post reactivates them.
func (s *Service) Toggle(channelID string) (*domain.Channel, error) {
	return s.repo.UpdateChannel(channelID, func(c *domain.Channel) error {
		switch c.Status {
		case domain.StatusActive:
			c.Status = domain.StatusPaused
		case domain.StatusPaused:
			c.Status = domain.StatusActive
		default:
			return oops.With("channel_id", channelID, "status", c.Status).Wrapf(errors.ErrInvalidInput, "only active or paused channels can be toggled")
		}
		return nil
	})
}

// Settings are the user-editable fields of a channel. Nil fields are left unchanged.
type Settings struct {
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Tag           *string          `json:"tag,omitempty"`
	SyncFrequency *string          `json:"sync_frequency,omitempty"`
	InviteLink    *string          `json:"invite_link,omitempty"`
	Filters       *[]domain.Filter `json:"filters,omitempty"`
}

// UpdateSettings applies the non-nil settings.
func (s *Service) UpdateSettings(channelID string, settings Settings) (*domain.Channel, error) {
	return s.repo.UpdateChannel(channelID, func(c *domain.Channel) error {
		if settings.Name != nil {
			name := strings.TrimSpace(*settings.Name)
			if name == "" {
				return oops.Wrapf(errors.ErrInvalidInput, "channel name must not be empty")
			}
			c.Name = name
		}
		if settings.Category != nil {
			c.Category = lo.CoalesceOrEmpty(strings.TrimSpace(*settings.Category), domain.DefaultCategory)
		}
		if settings.Tag != nil {
			c.Tag = strings.TrimSpace(*settings.Tag)
		}
		if settings.SyncFrequency != nil {
			c.SyncFrequency = strings.TrimSpace(*settings.SyncFrequency)
		}
		if settings.InviteLink != nil {
			c.InviteLink = strings.TrimSpace(*settings.InviteLink)
		}
		if settings.Filters != nil {
			for _, f := range *settings.Filters {
				if !f.Type.IsValid() {
					return oops.With("filter_type", f.Type).Wrap(errors.ErrInvalidFilter)
				}
			}
			c.Filters = *settings.Filters
		}
		return nil
	})
}

// AddFilter appends an enabled keyword filter.
func (s *Service) AddFilter(channelID string, filterType domain.FilterType, keywords []string) (*domain.Channel, error) {
	keywords = lo.Compact(lo.Map(keywords, func(k string, _ int) string { return strings.TrimSpace(k) }))
	if !filterType.IsValid() || len(keywords) == 0 {
		return nil, oops.With("filter_type", filterType).Wrap(errors.ErrInvalidFilter)
	}
	return s.repo.UpdateChannel(channelID, func(c *domain.Channel) error {
		c.Filters = append(c.Filters, domain.Filter{Type: filterType, Keywords: keywords, Enabled: true})
		return nil
	})
}

// RemoveFilter deletes the filter at a 1-based index.
func (s *Service) RemoveFilter(channelID string, index int) (*domain.Channel, error) {
	return s.repo.UpdateChannel(channelID, func(c *domain.Channel) error {
		if index < 1 || index > len(c.Filters) {
			return oops.With("index", index, "filters", len(c.Filters)).Wrapf(errors.ErrInvalidInput, "filter index out of range")
		}
		c.Filters = slices.Delete(c.Filters, index-1, index)
		return nil
	})
}

func (s *Service) Delete(channelID string) error {
	return s.repo.DeleteChannel(channelID)
}

// GetChannel retrieves a channel by ID
func (s *Service) GetChannel(channelID string) (*domain.Channel, error) {
	return s.repo.GetChannel(channelID)
}

// List returns the channels matching q, most recently joined first.
func (s *Service) List(q domain.Query) ([]*domain.Channel, error) {
	channels, err := s.repo.GetAllChannels()
	if err != nil {
		return nil, err
	}

	matches := func(facet, value string) bool {
		return facet == "" || facet == domain.FacetAll || strings.EqualFold(facet, value)
	}
	channels = lo.Filter(channels, func(c *domain.Channel, _ int) bool {
		return matches(q.Platform, string(c.Platform)) &&
			matches(q.Status, string(c.Status)) &&
			matches(q.Category, c.Category)
	})
	slices.SortStableFunc(channels, func(a, b *domain.Channel) int {
		return b.JoinedAt.Compare(a.JoinedAt)
	})
	return channels, nil
}

// FacetValues returns the distinct facet values in use, each list led by "all".
func (s *Service) FacetValues() (domain.Facets, error) {
	channels, err := s.repo.GetAllChannels()
	if err != nil {
		return domain.Facets{}, err
	}

	distinct := func(get func(*domain.Channel) string) []string {
		values := lo.Uniq(lo.Map(channels, func(c *domain.Channel, _ int) string { return get(c) }))
		slices.Sort(values)
		return append([]string{domain.FacetAll}, lo.Compact(values)...)
	}
	return domain.Facets{
		Platforms:  distinct(func(c *domain.Channel) string { return string(c.Platform) }),
		Statuses:   distinct(func(c *domain.Channel) string { return string(c.Status) }),
		Categories: distinct(func(c *domain.Channel) string { return c.Category }),
	}, nil
}

// RecordActivity marks a channel as active now; a new post reactivates an inactive channel.
func (s *Service) RecordActivity(channelID string, at time.Time) (*domain.Channel, error) {
	return s.repo.UpdateChannel(channelID, func(c *domain.Channel) error {
		c.Touch(at)
		return nil
	})
}

// SyncMessages returns the products stored since the channel's last sync and
// folds them into its statistics. Last activity and last sync become now.
// A sync already running for the same channel makes a second one fail with
// errors.ErrConflict.
func (s *Service) SyncMessages(ctx context.Context, channelID string) ([]productDomain.Product, error) {
	return s.syncMessages(ctx, channelID, true)
}

// syncMessages moves last activity on scheduled runs only when something
// was found, so idle channels still go inactive.
func (s *Service) syncMessages(ctx context.Context, channelID string, manual bool) ([]productDomain.Product, error) {
	if !s.beginSync(channelID) {
		return nil, oops.With("channel_id", channelID).Wrapf(errors.ErrConflict, "channel sync already in progress")
	}
	defer s.endSync(channelID)

	channel, err := s.repo.GetChannel(channelID)
	if err != nil {
		return nil, err
	}

	found, cursor, err := s.products.AddedSince(ctx, channelID, channel.SyncCursor)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to load new products").Wrap(err)
	}

	now := s.now()
	if _, err := s.repo.UpdateChannel(channelID, func(c *domain.Channel) error {
		// oldest first so the newest product ends up as the top product
		for i := len(found) - 1; i >= 0; i-- {
			c.RecordProduct(found[i].Name, found[i].Price)
		}
		if manual || len(found) > 0 {
			c.LastActivity = now
		}
		c.LastSync = now
		c.SyncCursor = max(c.SyncCursor, cursor)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Channel synced", "channel_id", channelID, "new_products", len(found), "manual", manual)
	return found, nil
}

// IsSyncing reports whether a sync of the channel is in flight.
func (s *Service) IsSyncing(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.syncing[channelID]
	return ok
}

func (s *Service) beginSync(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.syncing[channelID]; busy {
		return false
	}
	s.syncing[channelID] = struct{}{}
	return true
}

func (s *Service) endSync(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.syncing, channelID)
}
