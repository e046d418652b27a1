//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Outcome is what happened to an incoming post
// ENUM(unknown_channel,paused,filtered,stored,listed)
type Outcome string
