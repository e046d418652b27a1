//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// FilterType represents the type of content filter
// ENUM(keywords,exclude_keywords)
type FilterType string

// Platform is the messaging platform a channel lives on
// ENUM(telegram,whatsapp)
type Platform string

// Status is the monitoring state of a channel
// ENUM(active,paused,inactive)
type Status string

// Type is the visibility of a channel
// ENUM(public,private,group)
type Type string
