//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Type is the kind of record a favorite points to
// ENUM(product,supplier,note,search)
type Type string
