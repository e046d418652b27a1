//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Range is the reporting window of the overview
// ENUM(7d,30d,90d,all)
type Range string
