package domain

import (
	"strings"
	"time"
)

// Sources of contacts.
const (
	SourceTelegram  = "Telegram Channel"
	SourceExtracted = "Extracted Text"
)

// Contact is a supplier contact found in listings or pasted text.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company,omitempty"`
	Role        string    `json:"role,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Location    string    `json:"location,omitempty"`
	Source      string    `json:"source"`
	Verified    bool      `json:"verified"`
	LastContact time.Time `json:"last_contact"`
}

// NewContact holds the fields accepted when saving a contact by hand.
type NewContact struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Source   string `json:"source"`
}

// Matches reports whether name, company or email contains term.
func (c *Contact) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Company), term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}

// DisplayPhone formats a 10-digit number as "+91 98765 43210".
func DisplayPhone(phone string) string {
	if len(phone) != 10 {
		return phone
	}
	return "+91 " + phone[:5] + " " + phone[5:]
}

// Extraction is the contact data found in a piece of text.
type Extraction struct {
	Phones []string `json:"phones"`
	Emails []string `json:"emails"`
}

// Summary counts contacts for the overview cards.
type Summary struct {
	Total     int `json:"total"`
	Verified  int `json:"verified"`
	Companies int `json:"companies"`
	Sources   int `json:"sources"`
}
