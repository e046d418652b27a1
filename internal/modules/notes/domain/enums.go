//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Priority ranks a note
// ENUM(low,medium,high)
type Priority string
