// Package recommend turns the domain rollups into concrete operational
// advice, bucketed by how soon the restaurant should act on it.
package recommend

import (
	"fmt"
	"strings"

	"brasserie/internal/aggregate"
	"brasserie/internal/ratio"
)

// Recommendations holds advice bucketed by urgency. Each bucket keeps the
// order its rules fire in, so repeated runs over the same data produce the
// same lists.
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// Inputs collects every rollup the rules read from.
type Inputs struct {
	Sales        aggregate.SalesSummary
	Menu         aggregate.MenuSummary
	Loyalty      aggregate.LoyaltySummary
	Inventory    aggregate.InventorySummary
	Staff        aggregate.StaffSummary
	Marketing    aggregate.MarketingSummary
	Reviews      aggregate.ReviewSummary
	Reservations aggregate.ReservationSummary
	Ratios       ratio.Ratios
}

// Synthesize applies the rule set to the rollups. Rules fire in a fixed
// order; a rule whose trigger condition is absent contributes nothing.
func Synthesize(in Inputs) Recommendations {
	var r Recommendations

	if len(in.Inventory.LowStock) > 0 {
		names := make([]string, 0, len(in.Inventory.LowStock))
		for _, alert := range in.Inventory.LowStock {
			names = append(names, alert.Name)
		}
		r.Immediate = append(r.Immediate, fmt.Sprintf(
			"Reorder low-stock ingredients before the next service: %s", strings.Join(names, ", ")))
	}

	if len(in.Inventory.TopWaste) > 0 && in.Inventory.TopWaste[0].WasteCost > 0 {
		top := in.Inventory.TopWaste[0]
		r.Immediate = append(r.Immediate, fmt.Sprintf(
			"Review prep and storage for %s, the largest waste line at $%.2f", top.Name, top.WasteCost))
	}

	if noShows := in.Reservations.NoShows(); noShows > 0 {
		r.Immediate = append(r.Immediate, fmt.Sprintf(
			"Follow up on %d no-show reservation(s) and consider deposit holds for large parties", noShows))
	}

	if len(in.Reviews.NegativeExcerpts) > 0 {
		r.Immediate = append(r.Immediate, fmt.Sprintf(
			"Address %d negative review(s) with direct responses before they compound", len(in.Reviews.NegativeExcerpts)))
	}

	if in.Ratios.FoodCostFlag == ratio.HealthWarning {
		r.ShortTerm = append(r.ShortTerm, fmt.Sprintf(
			"Food cost is %.2f%% of gross sales; review supplier pricing and portion sizes", in.Ratios.FoodCostPercent))
	}

	if in.Ratios.LaborCostFlag == ratio.HealthWarning {
		r.ShortTerm = append(r.ShortTerm, fmt.Sprintf(
			"Labor cost is %.2f%% of gross sales; rebalance the schedule against covers", in.Ratios.LaborCostPercent))
	}

	if hour, ok := in.Sales.PeakHour(); ok {
		r.ShortTerm = append(r.ShortTerm, fmt.Sprintf(
			"Staff up for the %d:00 peak, the highest-revenue hour of the day", hour))
	}

	if len(in.Staff.Highlights) > 0 {
		r.ShortTerm = append(r.ShortTerm, fmt.Sprintf(
			"Recognize standout staff in the next team meeting: %s", strings.Join(in.Staff.Highlights, "; ")))
	}

	if len(in.Menu.Profits) > 0 && in.Menu.Profits[0].Profit > 0 {
		top := in.Menu.Profits[0]
		r.LongTerm = append(r.LongTerm, fmt.Sprintf(
			"Feature %s more prominently; it leads item profit at $%.2f", top.Name, top.Profit))
	}

	if len(in.Marketing.TopBySpendIncrease) > 0 {
		top := in.Marketing.TopBySpendIncrease[0]
		r.LongTerm = append(r.LongTerm, fmt.Sprintf(
			"Expand the %s promotion; it lifts average spend by $%.2f per redemption", top.Code, top.AvgSpendIncrease))
	}

	if loyal := in.Loyalty.LoyalCustomers(); loyal > 0 {
		r.LongTerm = append(r.LongTerm, fmt.Sprintf(
			"Build a targeted campaign for the %d guest(s) with 11+ visits", loyal))
	}

	if in.Ratios.ProfitMarginFlag == ratio.HealthWarning {
		r.LongTerm = append(r.LongTerm, fmt.Sprintf(
			"Net margin is %.2f%%, below a healthy floor; run a full cost-structure review", in.Ratios.ProfitMarginPercent))
	}

	r.LongTerm = append(r.LongTerm,
		"Keep running this report daily so week-over-week trends become visible")

	return r
}
