//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Format is the syndication format a feed is rendered in
// ENUM(rss,atom,json)
type Format string
