package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	alertDomain "github.com/reshetovitsme/product-scout/internal/modules/alerts/domain"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	contactDomain "github.com/reshetovitsme/product-scout/internal/modules/contacts/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/ingest/domain"
	messageDomain "github.com/reshetovitsme/product-scout/internal/modules/message/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/extract"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/oops"
)

type Channels interface {
	GetChannel(channelID string) (*channelDomain.Channel, error)
	RecordActivity(channelID string, at time.Time) (*channelDomain.Channel, error)
}

type Messages interface {
	Record(message *messageDomain.Message) error
}

type Products interface {
	Save(ctx context.Context, product *productDomain.Product) error
}

type Tagger interface {
	Apply(p *productDomain.Product) ([]string, error)
}

type Alerts interface {
	Evaluate(product *productDomain.Product) ([]*alertDomain.Alert, error)
}

type Contacts interface {
	RecordListing(phone, channelName string, at time.Time) (*contactDomain.Contact, error)
}

type JoinedChannels interface {
	Register(joined syncDomain.JoinedChannel) (*syncDomain.JoinedChannel, error)
}

// Deps are the stores a post flows through.
type Deps struct {
	Channels Channels
	Messages Messages
	Products Products
	Tagger   Tagger
	Alerts   Alerts
	Contacts Contacts
	Joined   JoinedChannels
}

// Service turns channel posts into messages and catalog products.
type Service struct {
	deps   Deps
	logger *slog.Logger
}

func New(deps Deps, logger *slog.Logger) *Service {
	return &Service{deps: deps, logger: logger}
}

// Ingest processes one post of a managed channel. Posts of unknown or
// paused channels, and posts rejected by the channel filters, are dropped.
func (s *Service) Ingest(ctx context.Context, post domain.Post) (domain.Result, error) {
	channel, err := s.deps.Channels.GetChannel(post.ChannelID)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Result{Outcome: domain.OutcomeUnknownChannel}, nil
		}
		return domain.Result{}, err
	}
	if channel.Status == channelDomain.StatusPaused {
		return domain.Result{Outcome: domain.OutcomePaused}, nil
	}
	if !channel.Accepts(post.Text) {
		s.logger.Debug("Post filtered out", "channel_id", channel.ID, "message_id", post.MessageID)
		return domain.Result{Outcome: domain.OutcomeFiltered}, nil
	}

	date := post.Date
	if date.IsZero() {
		date = time.Now()
	}
	date = date.UTC()

	message := &messageDomain.Message{
		ID:          post.MessageID,
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
		Text:        post.Text,
		Date:        date,
		Author:      post.Author,
		Media:       post.Media,
		Link:        post.Link(),
	}
	result := domain.Result{Outcome: domain.OutcomeStored, Message: message}

	listing, ok := extract.Parse(post.Text)
	if ok {
		product, tags, triggered, err := s.list(ctx, post, channel, listing, date)
		if err != nil {
			return domain.Result{}, err
		}
		message.ProductID = product.ID
		result.Outcome = domain.OutcomeListed
		result.Product = product
		result.Tags = tags
		result.Alerts = triggered
	}

	if err := s.deps.Messages.Record(message); err != nil {
		return domain.Result{}, oops.With("channel_id", channel.ID, "message_id", post.MessageID, "context", "failed to save message").Wrap(err)
	}
	if _, err := s.deps.Channels.RecordActivity(channel.ID, date); err != nil {
		s.logger.Error("Failed to record channel activity", "channel_id", channel.ID, "error", err)
	}

	s.logger.Info("New post from channel", "channel_id", channel.ID, "message_id", post.MessageID, "outcome", result.Outcome)
	return result, nil
}

// list stores the listing as a product, then runs tagging, alerts and
// contact capture over it. Only the product write is fatal.
func (s *Service) list(ctx context.Context, post domain.Post, channel *channelDomain.Channel, listing extract.Listing, date time.Time) (*productDomain.Product, []string, []*alertDomain.Alert, error) {
	product := &productDomain.Product{
		ID:          post.ProductID(),
		Name:        listing.Name,
		Price:       listing.Price,
		MinQuantity: listing.MinQuantity,
		Channel:     channel.Name,
		ChannelID:   channel.ID,
		Contact:     productDomain.Contact{Phone: listing.Phone, WhatsApp: productDomain.WhatsAppLink(listing.Phone)},
		PostedAt:    date,
		Category:    listing.Category,
		Description: listing.Description,
	}

	tags, err := s.deps.Tagger.Apply(product)
	if err != nil {
		s.logger.Warn("Tagging failed", "product_id", product.ID, "error", err)
	}

	if err := s.deps.Products.Save(ctx, product); err != nil {
		return nil, nil, nil, oops.With("product_id", product.ID, "context", "failed to save product").Wrap(err)
	}

	triggered, err := s.deps.Alerts.Evaluate(product)
	if err != nil {
		s.logger.Warn("Alert evaluation failed", "product_id", product.ID, "error", err)
	}

	if product.Contact.Phone != "" {
		if _, err := s.deps.Contacts.RecordListing(product.Contact.Phone, channel.Name, date); err != nil {
			s.logger.Warn("Failed to record contact", "product_id", product.ID, "error", err)
		}
	}
	return product, tags, triggered, nil
}

// Discover registers a channel the bot can see as a joined channel.
func (s *Service) Discover(joined syncDomain.JoinedChannel) {
	joined.ChannelName = strings.TrimSpace(joined.ChannelName)
	if joined.TelegramID == "" || joined.ChannelName == "" {
		return
	}
	if _, err := s.deps.Joined.Register(joined); err != nil {
		s.logger.Warn("Failed to register joined channel", "telegram_id", joined.TelegramID, "error", err)
	}
}
