package service

import (
	"github.com/reshetovitsme/product-scout/internal/modules/profit/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Rating thresholds, in margin percent.
const (
	excellentMargin = 20
	goodMargin      = 10
)

// Estimate computes profit and margin for a selling price. Margin is
// profit as a percentage of price, and 0 when price is not positive.
func Estimate(price float64, costs domain.Costs) domain.Estimate {
	total := costs.Total()
	profit := price - total

	var margin float64
	if price > 0 {
		margin = profit / price * 100
	}

	return domain.Estimate{
		Price:      price,
		Costs:      costs,
		TotalCosts: total,
		Profit:     profit,
		Margin:     margin,
		Rating:     Rate(margin),
		Scenarios: lo.Map(domain.DemandScenarios, func(s domain.Scenario, _ int) domain.Scenario {
			s.Profit = profit * s.Multiplier
			s.Margin = margin * s.Multiplier
			return s
		}),
	}
}

// Calculate is Estimate with input validation.
func Calculate(price float64, costs domain.Costs) (domain.Estimate, error) {
	if price < 0 || costs.Shipping < 0 || costs.PlatformFee < 0 || costs.Marketing < 0 {
		return domain.Estimate{}, oops.
			With("price", price, "shipping", costs.Shipping, "platform_fee", costs.PlatformFee, "marketing", costs.Marketing).
			Wrapf(errors.ErrInvalidInput, "price and costs must not be negative")
	}
	return Estimate(price, costs), nil
}

// Rate grades a margin percentage.
func Rate(margin float64) domain.MarginRating {
	switch {
	case margin >= excellentMargin:
		return domain.MarginRatingExcellent
	case margin >= goodMargin:
		return domain.MarginRatingGood
	case margin >= 0:
		return domain.MarginRatingLow
	default:
		return domain.MarginRatingLoss
	}
}
