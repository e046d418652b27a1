package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// JoinedChannel is a channel the bot account is a member of. It becomes a
// managed channel once saved.
type JoinedChannel struct {
	ChannelID     string    `json:"channel_id"`
	ChannelName   string    `json:"channel_name"`
	TelegramID    string    `json:"telegram_id"`
	Members       int       `json:"members"`
	IsVerified    bool      `json:"is_verified"`
	JoinedAt      time.Time `json:"joined_at"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	Tags          []string  `json:"tags"`
	Description   string    `json:"description,omitempty"`
	IsSaved       bool      `json:"is_saved"`
}

// Username is ChannelID without the leading "@".
func (j *JoinedChannel) Username() string {
	return strings.TrimPrefix(j.ChannelID, "@")
}

// ListOptions narrow and order a joined-channel list.
type ListOptions struct {
	Query        string
	Verification Verification
	SortBy       SortBy
}

// Matches reports whether the channel name, id, owner or a tag contains query.
func (j *JoinedChannel) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	fields := append([]string{j.ChannelName, j.ChannelID, j.OwnerUsername}, j.Tags...)
	return lo.SomeBy(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), q)
	})
}

// Select filters and sorts channels without modifying the input slice.
func Select(channels []JoinedChannel, opts ListOptions) []JoinedChannel {
	out := lo.Filter(channels, func(j JoinedChannel, _ int) bool {
		switch opts.Verification {
		case VerificationVerified:
			if !j.IsVerified {
				return false
			}
		case VerificationUnverified:
			if j.IsVerified {
				return false
			}
		}
		return j.Matches(opts.Query)
	})

	switch opts.SortBy {
	case SortByName:
		slices.SortStableFunc(out, func(a, b JoinedChannel) int {
			return strings.Compare(strings.ToLower(a.ChannelName), strings.ToLower(b.ChannelName))
		})
	case SortByJoined:
		slices.SortStableFunc(out, func(a, b JoinedChannel) int {
			return b.JoinedAt.Compare(a.JoinedAt)
		})
	default:
		slices.SortStableFunc(out, func(a, b JoinedChannel) int {
			return b.Members - a.Members
		})
	}
	return out
}
