package domain

import (
	"strconv"
	"time"
)

// User is a Telegram account that started the bot.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	StartedAt time.Time `json:"started_at"`
}

// Handle is "@username", or the numeric id for accounts without a username.
func (u *User) Handle() string {
	if u.Username == "" {
		return "#" + strconv.FormatInt(u.ID, 10)
	}
	return "@" + u.Username
}
