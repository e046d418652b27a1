package domain

// Costs are the per-unit costs subtracted from the selling price.
type Costs struct {
	Shipping    float64 `json:"shipping"`
	PlatformFee float64 `json:"platform_fee"`
	Marketing   float64 `json:"marketing"`
}

// Total is the sum of all costs.
func (c Costs) Total() float64 {
	return c.Shipping + c.PlatformFee + c.Marketing
}

// Scenario scales the realistic estimate by a demand multiplier.
type Scenario struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
	Profit      float64 `json:"profit"`
	Margin      float64 `json:"margin"`
}

// Estimate is the result of a profit calculation.
type Estimate struct {
	Price      float64      `json:"price"`
	Costs      Costs        `json:"costs"`
	TotalCosts float64      `json:"total_costs"`
	Profit     float64      `json:"profit"`
	Margin     float64      `json:"margin"`
	Rating     MarginRating `json:"rating"`
	Scenarios  []Scenario   `json:"scenarios"`
}

// DemandScenarios are applied to every estimate, in this order.
var DemandScenarios = []Scenario{
	{Name: "Conservative", Description: "Lower market demand", Multiplier: 0.8},
	{Name: "Realistic", Description: "Current market conditions", Multiplier: 1.0},
	{Name: "Optimistic", Description: "High demand scenario", Multiplier: 1.3},
}
