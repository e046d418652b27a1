package domain

import (
	"time"

	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
)

// Window is the length of the range, or 0 for all time.
func (r Range) Window() time.Duration {
	switch r {
	case Range7d:
		return 7 * 24 * time.Hour
	case Range30d:
		return 30 * 24 * time.Hour
	case Range90d:
		return 90 * 24 * time.Hour
	default:
		return 0
	}
}

type Overview struct {
	Range          Range                   `json:"range"`
	TotalProducts  int                     `json:"total_products"`
	ActiveChannels int                     `json:"active_channels"`
	AveragePrice   float64                 `json:"average_price"`
	TopCategories  []CategoryShare         `json:"top_categories"`
	Channels       []ChannelPerformance    `json:"channels"`
	Recent         []productDomain.Product `json:"recent"`
}

type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ChannelPerformance struct {
	Channel      string  `json:"channel"`
	Products     int     `json:"products"`
	AveragePrice float64 `json:"average_price"`
}
