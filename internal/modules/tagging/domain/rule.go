package domain

import "time"

// Rule adds Tags to every product matching Condition.
type Rule struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Condition  string    `json:"condition"`
	Tags       []string  `json:"tags"`
	Active     bool      `json:"active"`
	MatchCount int       `json:"match_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRule holds the fields accepted when creating a rule. Tags is a comma-separated list.
type NewRule struct {
	Name      string `json:"name"`
	Condition string `json:"condition"`
	Tags      string `json:"tags"`
}
