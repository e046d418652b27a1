package domain

import (
	"strings"
	"time"
)

// Alert watches a product (or supplier) value against a threshold.
type Alert struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Type         Type      `json:"type"`
	Priority     Priority  `json:"priority"`
	Product      string    `json:"product"`
	Threshold    float64   `json:"threshold"`
	CurrentValue float64   `json:"current_value"`
	TriggeredAt  time.Time `json:"triggered_at,omitzero"`
	// ProductID is the catalog product that last triggered the alert.
	ProductID string    `json:"product_id,omitempty"`
	Active    bool      `json:"active"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAlert holds the fields accepted when creating an alert.
type NewAlert struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        Type     `json:"type"`
	Priority    Priority `json:"priority"`
	Product     string   `json:"product"`
	Threshold   float64  `json:"threshold"`
}

// Query narrows the alert list. Empty fields impose no constraint.
type Query struct {
	Type     Type
	Priority Priority
	ShowRead bool
}

func (a *Alert) Matches(q Query) bool {
	return (q.Type == "" || a.Type == q.Type) &&
		(q.Priority == "" || a.Priority == q.Priority) &&
		(q.ShowRead || !a.Read)
}

// WatchesPrice reports whether the alert fires on listing prices.
func (a *Alert) WatchesPrice() bool {
	return a.Type == TypePriceDrop || a.Type == TypeCompetitor
}

// Fires reports whether a listing named name at price trips the alert.
func (a *Alert) Fires(name string, price float64) bool {
	if !a.Active || !a.WatchesPrice() || a.Product == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(a.Product)) && price <= a.Threshold
}

// Summary counts alerts for the overview cards.
type Summary struct {
	Unread       int `json:"unread"`
	Active       int `json:"active"`
	HighPriority int `json:"high_priority"`
}
