package domain

import "time"

// Message is a raw channel post kept after it passed the channel filters
type Message struct {
	ID          int64     `json:"id"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	Text        string    `json:"text"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Media       []Media   `json:"media,omitempty"`
	Link        string    `json:"link,omitempty"`
	// ProductID is set when a product listing was extracted from the post.
	ProductID string `json:"product_id,omitempty"`
}

// Media represents multimedia content in a message
type Media struct {
	Type    MediaType `json:"type"`
	FileID  string    `json:"file_id"`
	Caption string    `json:"caption,omitempty"`
}
