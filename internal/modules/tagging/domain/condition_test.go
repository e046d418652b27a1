package domain

import (
	"testing"

	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
)

func TestConditionMatch(t *testing.T) {
	phone := &productDomain.Product{Name: "Budget Smartphone X2", Price: 12_999, MinQuantity: 10, Category: "Electronics", Channel: "TechDeals"}
	laptop := &productDomain.Product{Name: "Gaming Laptop", Price: 74_500, MinQuantity: 2, Category: "Electronics", Channel: "TechDeals"}
	saree := &productDomain.Product{Name: "Silk Saree", Price: 1_800, MinQuantity: 25, Category: "Fashion", Channel: "Rock and Roll Textiles"}

	tests := []struct {
		condition string
		want      [3]bool
	}{
		{"price > ₹50,000 AND category = Electronics", [3]bool{false, true, false}},
		{"price < ₹25,000 AND category = Electronics AND name contains 'phone'", [3]bool{true, false, false}},
		{"name contains 'gaming' OR name contains 'game'", [3]bool{false, true, false}},
		{"category != electronics", [3]bool{false, false, true}},
		{"quantity >= 10", [3]bool{true, false, true}},
		{"min_quantity <= 2 or price <= 1.8k", [3]bool{false, true, true}},
		{"channel = 'Rock and Roll Textiles'", [3]bool{false, false, true}},
		{"price = 12999", [3]bool{true, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			cond, err := ParseCondition(tt.condition)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := [3]bool{cond.Match(phone), cond.Match(laptop), cond.Match(saree)}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseConditionErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"brand = Apple",
		"price contains 5",
		"price > cheap",
		"name > phone",
		"name contains",
		"price > 5 AND",
		"category",
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseCondition(in); !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
