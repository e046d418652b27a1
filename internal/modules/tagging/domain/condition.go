package domain

import (
	"strings"
	"unicode"

	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/money"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Condition is a disjunction of conjunctions of clauses:
//
//	clause (AND clause)* (OR clause (AND clause)*)*
type Condition [][]Clause

// Clause compares one product field with a literal.
type Clause struct {
	Field string
	Op    string
	Text  string
	Num   float64
}

var numericFields = map[string]string{
	"price":        "price",
	"min_quantity": "min_quantity",
	"quantity":     "min_quantity",
	"moq":          "min_quantity",
}

var textFields = []string{"name", "category", "channel", "description"}

// Operators in match order: two-character operators first.
var operators = []string{"<=", ">=", "!=", "=", "<", ">", "contains"}

// ParseCondition parses a rule condition such as
// "price < ₹25,000 AND category = Electronics AND name contains 'phone'".
func ParseCondition(s string) (Condition, error) {
	if strings.TrimSpace(s) == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "condition is empty")
	}

	var cond Condition
	for _, group := range splitKeyword(s, "or") {
		var all []Clause
		for _, raw := range splitKeyword(group, "and") {
			clause, err := parseClause(raw)
			if err != nil {
				return nil, oops.With("condition", s).Wrap(err)
			}
			all = append(all, clause)
		}
		cond = append(cond, all)
	}
	return cond, nil
}

func parseClause(raw string) (Clause, error) {
	raw = strings.TrimSpace(raw)
	end := strings.IndexFunc(raw, func(r rune) bool { return !(unicode.IsLetter(r) || r == '_') })
	if end <= 0 {
		return Clause{}, oops.With("clause", raw).Wrapf(errors.ErrInvalidInput, "clause must start with a field name")
	}
	field := strings.ToLower(raw[:end])
	rest := strings.TrimSpace(raw[end:])

	op, ok := lo.Find(operators, func(op string) bool {
		return len(rest) >= len(op) && strings.EqualFold(rest[:len(op)], op)
	})
	if !ok {
		return Clause{}, oops.With("clause", raw).Wrapf(errors.ErrInvalidInput, "missing operator")
	}
	value := unquote(strings.TrimSpace(rest[len(op):]))
	if value == "" {
		return Clause{}, oops.With("clause", raw).Wrapf(errors.ErrInvalidInput, "missing value")
	}

	if canonical, numeric := numericFields[field]; numeric {
		if op == "contains" {
			return Clause{}, oops.With("clause", raw).Wrapf(errors.ErrInvalidInput, "contains needs a text field")
		}
		n, err := money.ParseAmount(value)
		if err != nil {
			return Clause{}, oops.With("clause", raw).Wrapf(errors.ErrInvalidInput, "value is not a number")
		}
		return Clause{Field: canonical, Op: op, Num: n}, nil
	}

	if !lo.Contains(textFields, field) {
		return Clause{}, oops.With("field", field).Wrapf(errors.ErrInvalidInput, "unknown field")
	}
	if op != "=" && op != "!=" && op != "contains" {
		return Clause{}, oops.With("clause", raw).Wrapf(errors.ErrInvalidInput, "text fields support =, != and contains")
	}
	return Clause{Field: field, Op: op, Text: strings.ToLower(value)}, nil
}

// Match reports whether any AND group holds for p.
func (c Condition) Match(p *productDomain.Product) bool {
	return lo.SomeBy(c, func(group []Clause) bool {
		return lo.EveryBy(group, func(clause Clause) bool { return clause.Match(p) })
	})
}

func (c Clause) Match(p *productDomain.Product) bool {
	switch c.Field {
	case "price":
		return compare(p.Price, c.Op, c.Num)
	case "min_quantity":
		return compare(float64(p.MinQuantity), c.Op, c.Num)
	}

	var v string
	switch c.Field {
	case "name":
		v = p.Name
	case "category":
		v = p.Category
	case "channel":
		v = p.Channel
	case "description":
		v = p.Description
	}
	v = strings.ToLower(v)
	switch c.Op {
	case "=":
		return v == c.Text
	case "!=":
		return v != c.Text
	default:
		return strings.Contains(v, c.Text)
	}
}

func compare(a float64, op string, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "!=":
		return a != b
	default:
		return a == b
	}
}

// splitKeyword splits s on the whole word kw (any case) outside quotes.
func splitKeyword(s, kw string) []string {
	var (
		parts []string
		start int
		quote rune
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case isWordAt(runes, i, kw):
			parts = append(parts, string(runes[start:i]))
			i += len(kw) - 1
			start = i + 1
		}
	}
	return append(parts, string(runes[start:]))
}

func isWordAt(runes []rune, i int, kw string) bool {
	end := i + len(kw)
	if end > len(runes) || !strings.EqualFold(string(runes[i:end]), kw) {
		return false
	}
	boundary := func(j int) bool { return j < 0 || j >= len(runes) || unicode.IsSpace(runes[j]) }
	return boundary(i-1) && boundary(end)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
