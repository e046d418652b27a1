package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Product is a wholesale listing found in a channel.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	MinQuantity int       `json:"min_quantity"`
	Channel     string    `json:"channel"`
	ChannelID   string    `json:"channel_id,omitempty"`
	Contact     Contact   `json:"contact"`
	PostedAt    time.Time `json:"posted_at"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// Contact holds the seller's phone and WhatsApp deep link.
type Contact struct {
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
}

// WhatsAppLink builds the wa.me link for a 10-digit Indian number.
func WhatsAppLink(phone string) string {
	if phone == "" {
		return ""
	}
	return "https://wa.me/91" + phone
}

// SplitTags splits a comma-separated tag list, dropping blanks and duplicates.
func SplitTags(s string) []string {
	tags := lo.Map(strings.Split(s, ","), func(t string, _ int) string { return strings.TrimSpace(t) })
	return lo.Uniq(lo.Compact(tags))
}
