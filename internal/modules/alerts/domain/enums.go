//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Type is what an alert watches
// ENUM(price_drop,stock_low,profit_high,competitor,supplier_rating)
type Type string

// Priority ranks an alert
// ENUM(low,medium,high)
type Priority string
