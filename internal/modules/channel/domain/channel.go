package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	DefaultCategory      = "General"
	DefaultSyncFrequency = "15min"
	// NoTopProduct is shown until the first product is found.
	NoTopProduct = "None yet"
)

// Channel is a messaging channel tracked as a product source.
type Channel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username,omitempty"`
	Platform      Platform  `json:"platform"`
	Type          Type      `json:"type"`
	Members       int       `json:"members"`
	Category      string    `json:"category"`
	Status        Status    `json:"status"`
	LastActivity  time.Time `json:"last_activity"`
	Stats         Stats     `json:"stats"`
	TopProduct    string    `json:"top_product"`
	JoinedAt      time.Time `json:"joined_at"`
	InviteLink    string    `json:"invite_link,omitempty"`
	Tag           string    `json:"tag,omitempty"`
	SyncFrequency string    `json:"sync_frequency"`
	Filters       []Filter  `json:"filters"`
	LastSync      time.Time `json:"last_sync,omitempty"`
	// SyncCursor is the catalog position the last sync reached.
	SyncCursor int64 `json:"sync_cursor,omitempty"`
	AddedBy    int64 `json:"added_by,omitempty"`
}

// Stats aggregate the products found in a channel.
type Stats struct {
	ProductsFound int     `json:"products_found"`
	AveragePrice  float64 `json:"average_price"`
}

// Filter represents content filtering criteria
type Filter struct {
	Type     FilterType `json:"type"`
	Keywords []string   `json:"keywords"`
	Enabled  bool       `json:"enabled"`
}

// NewChannel holds the fields accepted when adding a channel by hand.
type NewChannel struct {
	Name       string   `json:"name"`
	InviteLink string   `json:"invite_link"`
	Platform   Platform `json:"platform"`
	Type       Type     `json:"type"`
	Category   string   `json:"category"`
	Tag        string   `json:"tag"`
}

// Query selects channels by facet. Empty or "all" imposes no constraint.
type Query struct {
	Platform string
	Status   string
	Category string
}

// FacetAll is the facet value that matches everything.
const FacetAll = "all"

// Facets are the distinct values offered by each channel facet.
type Facets struct {
	Platforms  []string `json:"platforms"`
	Statuses   []string `json:"statuses"`
	Categories []string `json:"categories"`
}

// RecordProduct folds a synced product into the channel statistics.
func (c *Channel) RecordProduct(name string, price float64) {
	n := float64(c.Stats.ProductsFound)
	c.Stats.AveragePrice = (c.Stats.AveragePrice*n + price) / (n + 1)
	c.Stats.ProductsFound++
	c.TopProduct = name
}

// Touch records activity at t. An inactive channel becomes active again.
func (c *Channel) Touch(t time.Time) {
	if t.After(c.LastActivity) {
		c.LastActivity = t
	}
	if c.Status == StatusInactive {
		c.Status = StatusActive
	}
}

var syncFrequencyRe = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hr|hrs|hour|hours)$`)

// SyncInterval parses SyncFrequency ("5min", "1h"). Zero means manual only.
func (c *Channel) SyncInterval() time.Duration {
	m := syncFrequencyRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(c.SyncFrequency)))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	if strings.HasPrefix(m[2], "h") {
		return time.Duration(n) * time.Hour
	}
	return time.Duration(n) * time.Minute
}

// Accepts reports whether text passes every enabled filter: a keywords filter
// needs one of its keywords, an exclude_keywords filter must see none.
// Matching ignores case.
func (c *Channel) Accepts(text string) bool {
	lower := strings.ToLower(text)
	contains := func(keyword string) bool {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		return keyword != "" && strings.Contains(lower, keyword)
	}

	for _, filter := range c.Filters {
		if !filter.Enabled {
			continue
		}
		switch filter.Type {
		case FilterTypeKeywords:
			if !lo.SomeBy(filter.Keywords, contains) {
				return false
			}
		case FilterTypeExcludeKeywords:
			if lo.SomeBy(filter.Keywords, contains) {
				return false
			}
		}
	}
	return true
}
