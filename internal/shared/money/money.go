// Package money formats and parses rupee amounts as they appear in listings.
package money

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupee = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

var amountRe = regexp.MustCompile(`(?i)^(-)?\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(k|l|lakh|lac|cr|crore)?$`)

var multipliers = map[string]float64{
	"":      1,
	"k":     1_000,
	"l":     100_000,
	"lakh":  100_000,
	"lac":   100_000,
	"cr":    10_000_000,
	"crore": 10_000_000,
}

// FormatINR renders a whole-rupee amount with en-IN digit grouping.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	rounded := math.Round(math.Abs(amount))
	return sign + rupee + printer.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0)))
}

// ParseAmount reads amounts such as "₹1,34,900", "Rs. 299", "12.4L" or "899".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return 0, oops.With("amount", s).Errorf("not a rupee amount")
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return 0, oops.With("amount", s).Wrap(err)
	}
	value *= multipliers[strings.ToLower(m[3])]
	if m[1] == "-" {
		value = -value
	}
	return value, nil
}
