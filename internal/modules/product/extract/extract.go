// Package extract pulls product listings out of free-form channel posts.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/reshetovitsme/product-scout/internal/shared/money"
	"github.com/samber/lo"
)

const (
	DefaultCategory = "General"
	maxNameRunes    = 120
)

var (
	priceRe = regexp.MustCompile(`(?i)(?:₹|\brs\.?|\binr|\bprice\s*[:\-=]?\s*(?:₹|rs\.?|inr)?)\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakh|lac|k|l)?\b`)
	moqRe   = regexp.MustCompile(`(?i)\b(?:moq|min(?:imum)?(?:\s+order)?(?:\s+(?:qty|quantity))?)\s*[:\-=]?\s*(\d+)`)
	phoneRe = regexp.MustCompile(`(?:\+?91[\s\-]?)?([6-9]\d{4}[\s\-]?\d{5})`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

type categoryRule struct {
	category string
	keywords []string
}

// Rules are checked in order; the first category with a keyword hit wins.
var categoryRules = []categoryRule{
	{"Electronics", []string{"phone", "mobile", "earbud", "headphone", "laptop", "macbook", "iphone", "watch", "bulb", "charger", "speaker", "electronic", "tablet", "camera"}},
	{"Clothing", []string{"t-shirt", "tshirt", "shirt", "jeans", "cotton", "hoodie", "trouser", "kids wear"}},
	{"Fashion", []string{"handbag", "wallet", "saree", "kurti", "ethnic", "fashion", "jewel", "sunglass", "leather"}},
	{"Sports", []string{"sport", "fitness", "gym", "running", "cricket", "football", "yoga"}},
	{"Home & Kitchen", []string{"kitchen", "appliance", "mixer", "cookware", "bedsheet", "furniture", "home"}},
	{"Beauty", []string{"beauty", "cosmetic", "skincare", "makeup", "perfume", "lipstick"}},
	{"Books", []string{"book", "novel", "notebook"}},
	{"Toys", []string{"toy", "puzzle", "doll"}},
}

// Listing is what could be read from a post.
type Listing struct {
	Name        string
	Price       float64
	MinQuantity int
	Phone       string
	Category    string
	Description string
}

// Parse reads a listing from text. ok is false when no price was found,
// since a post without a price is not treated as a product.
func Parse(text string) (listing Listing, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Listing{}, false
	}

	price, found := Price(text)
	if !found {
		return Listing{}, false
	}

	name, description := splitTitle(text)
	return Listing{
		Name:        name,
		Price:       price,
		MinQuantity: MinQuantity(text),
		Phone:       lo.FirstOrEmpty(Phones(text)),
		Category:    Category(text),
		Description: description,
	}, true
}

// Price returns the first rupee amount in text.
func Price(text string) (float64, bool) {
	for _, m := range priceRe.FindAllStringSubmatch(text, -1) {
		amount, err := money.ParseAmount(m[1] + strings.ToLower(m[2]))
		if err == nil && amount > 0 {
			return amount, true
		}
	}
	return 0, false
}

// MinQuantity returns the minimum order quantity, or 1 when none is stated.
func MinQuantity(text string) int {
	m := moqRe.FindStringSubmatch(text)
	if m == nil {
		return 1
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || qty <= 0 {
		return 1
	}
	return qty
}

// Phones returns distinct 10-digit Indian mobile numbers in order of appearance.
func Phones(text string) []string {
	isDigit := func(i int) bool { return i >= 0 && i < len(text) && text[i] >= '0' && text[i] <= '9' }

	var phones []string
	for _, loc := range phoneRe.FindAllStringSubmatchIndex(text, -1) {
		// reject numbers embedded in longer digit runs
		if isDigit(loc[0]-1) || isDigit(loc[1]) {
			continue
		}
		phones = append(phones, strings.NewReplacer(" ", "", "-", "").Replace(text[loc[2]:loc[3]]))
	}
	return lo.Uniq(phones)
}

// Emails returns distinct email addresses in order of appearance.
func Emails(text string) []string {
	return lo.Uniq(lo.Map(emailRe.FindAllString(text, -1), func(e string, _ int) string {
		return strings.ToLower(e)
	}))
}

// Category guesses a catalog category from keywords.
func Category(text string) string {
	lower := strings.ToLower(text)
	rule, found := lo.Find(categoryRules, func(r categoryRule) bool {
		return lo.SomeBy(r.keywords, func(k string) bool { return strings.Contains(lower, k) })
	})
	if !found {
		return DefaultCategory
	}
	return rule.category
}

func splitTitle(text string) (string, string) {
	lines := strings.Split(text, "\n")
	idx := lo.IndexOf(lo.Map(lines, func(l string, _ int) bool { return strings.TrimSpace(l) != "" }), true)
	if idx < 0 {
		return "", ""
	}

	name := strings.TrimLeftFunc(strings.TrimSpace(lines[idx]), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = string(runes[:maxNameRunes])
	}
	description := strings.TrimSpace(strings.Join(lines[idx+1:], "\n"))
	return name, description
}
