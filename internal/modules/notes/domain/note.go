package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

const DefaultCategory = "General"

// Note is a free-form research note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category"`
	Starred   bool      `json:"starred"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote holds the fields accepted when creating a note. Tags is a comma-separated list.
type NewNote struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     string   `json:"tags"`
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
}

// Query narrows the note list. Term matches title, content and tags.
type Query struct {
	Term     string
	Category string
}

func (n *Note) Matches(q Query) bool {
	if q.Category != "" && n.Category != q.Category {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term) ||
		lo.SomeBy(n.Tags, func(tag string) bool { return strings.Contains(strings.ToLower(tag), term) })
}
