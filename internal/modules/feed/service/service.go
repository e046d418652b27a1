package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/gorilla/feeds"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/feed/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/money"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Channels interface {
	GetChannel(channelID string) (*channelDomain.Channel, error)
}

type Products interface {
	ByChannel(ctx context.Context, channelID string, limit int) ([]productDomain.Product, error)
}

// Service handles feed generation
type Service struct {
	channels Channels
	products Products
}

// New creates a new feed service
func New(channels Channels, products Products) *Service {
	return &Service{
		channels: channels,
		products: products,
	}
}

// GenerateFeed builds the feed of a channel's latest products
func (s *Service) GenerateFeed(ctx context.Context, channelID string, baseURL string) (*feeds.Feed, error) {
	channel, err := s.channels.GetChannel(channelID)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "channel not found").Wrap(err)
	}

	products, err := s.products.ByChannel(ctx, channelID, domain.ItemLimit)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to get products").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - Product Feed", channel.Name),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/rss/%s", baseURL, channel.ID)},
		Description: fmt.Sprintf("Wholesale listings from %s", channel.Name),
		Author:      &feeds.Author{Name: lo.CoalesceOrEmpty(channel.Username, channel.Name)},
		Created:     channel.JoinedAt,
		Updated:     channel.LastActivity,
	}
	feed.Items = lo.Map(products, func(p productDomain.Product, _ int) *feeds.Item {
		return productToFeedItem(&p, baseURL)
	})
	return feed, nil
}

// Render serialises a feed in the given format.
func Render(feed *feeds.Feed, format domain.Format) (string, error) {
	var (
		out string
		err error
	)
	switch format {
	case domain.FormatAtom:
		out, err = feed.ToAtom()
	case domain.FormatJson:
		out, err = feed.ToJSON()
	default:
		out, err = feed.ToRss()
	}
	if err != nil {
		return "", oops.With("format", format, "context", "failed to render feed").Wrap(err)
	}
	return out, nil
}

func productToFeedItem(p *productDomain.Product, baseURL string) *feeds.Item {
	lines := []string{
		fmt.Sprintf("Price: %s", money.FormatINR(p.Price)),
		fmt.Sprintf("Minimum order: %d", p.MinQuantity),
		fmt.Sprintf("Category: %s", p.Category),
	}
	if p.Contact.Phone != "" {
		lines = append(lines, fmt.Sprintf("Contact: %s", p.Contact.Phone))
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	description := strings.Join(lines, "\n")

	var content strings.Builder
	content.WriteString("<ul>")
	for _, line := range lines[:3] {
		fmt.Fprintf(&content, "<li>%s</li>", html.EscapeString(line))
	}
	if p.Contact.WhatsApp != "" {
		fmt.Fprintf(&content, `<li><a href="%s">WhatsApp %s</a></li>`, html.EscapeString(p.Contact.WhatsApp), html.EscapeString(p.Contact.Phone))
	}
	content.WriteString("</ul>")
	if p.Description != "" {
		fmt.Fprintf(&content, "<p>%s</p>", html.EscapeString(p.Description))
	}

	return &feeds.Item{
		Title:       fmt.Sprintf("%s - %s", p.Name, money.FormatINR(p.Price)),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/products/%s", baseURL, p.ID)},
		Description: description,
		Content:     content.String(),
		Author:      &feeds.Author{Name: p.Channel},
		Created:     p.PostedAt,
		Id:          p.ID,
	}
}
