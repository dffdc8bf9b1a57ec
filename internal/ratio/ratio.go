// Package ratio derives financial health ratios from the extracted finance
// scalars and classifies each against a fixed industry threshold.
package ratio

import (
	"fmt"
	"math"
)

// Health is the tri-state classification of a ratio against its threshold.
type Health string

const (
	HealthHealthy Health = "healthy"
	HealthWarning Health = "warning"
)

// Fixed thresholds; boundary values are healthy.
const (
	FoodCostHealthyMax     = 30.0
	LaborCostHealthyMax    = 35.0
	ProfitMarginHealthyMin = 15.0
)

// DivisionGuardError indicates a ratio whose denominator is zero. The engine
// surfaces this rather than fabricating a number.
type DivisionGuardError struct {
	Ratio       string
	Denominator string
}

func (e *DivisionGuardError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s is zero", e.Ratio, e.Denominator)
}

// Ratios holds the computed health ratios and their flags.
type Ratios struct {
	FoodCostPercent     float64 `json:"food_cost_percent"`
	FoodCostFlag        Health  `json:"food_cost_flag"`
	LaborCostPercent    float64 `json:"labor_cost_percent"`
	LaborCostFlag       Health  `json:"labor_cost_flag"`
	ProfitMarginPercent float64 `json:"profit_margin_percent"`
	ProfitMarginFlag    Health  `json:"profit_margin_flag"`
}

// Compute derives food-cost, labor-cost and profit-margin percentages from
// the finance scalars. A zero gross sales figure is a DivisionGuardError.
func Compute(grossSales, totalCOGS, laborCost, netProfit float64) (Ratios, error) {
	if grossSales == 0 {
		return Ratios{}, &DivisionGuardError{Ratio: "financial health ratios", Denominator: "gross sales"}
	}

	r := Ratios{
		FoodCostPercent:     round2(totalCOGS / grossSales * 100),
		LaborCostPercent:    round2(laborCost / grossSales * 100),
		ProfitMarginPercent: round2(netProfit / grossSales * 100),
	}

	r.FoodCostFlag = flagMax(r.FoodCostPercent, FoodCostHealthyMax)
	r.LaborCostFlag = flagMax(r.LaborCostPercent, LaborCostHealthyMax)
	r.ProfitMarginFlag = flagMin(r.ProfitMarginPercent, ProfitMarginHealthyMin)

	return r, nil
}

func flagMax(value, healthyMax float64) Health {
	if value <= healthyMax {
		return HealthHealthy
	}
	return HealthWarning
}

func flagMin(value, healthyMin float64) Health {
	if value >= healthyMin {
		return HealthHealthy
	}
	return HealthWarning
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
