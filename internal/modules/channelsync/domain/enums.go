//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Verification narrows the joined-channel list by verified badge
// ENUM(all,verified,unverified)
type Verification string

// SortBy orders the joined-channel list
// ENUM(members,name,joined)
type SortBy string
