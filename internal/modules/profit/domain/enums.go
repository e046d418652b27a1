//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// MarginRating grades a profit margin
// ENUM(excellent,good,low,loss)
type MarginRating string
