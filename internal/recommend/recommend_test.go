package recommend

import (
	"reflect"
	"testing"

	"brasserie/internal/aggregate"
	"brasserie/internal/ratio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullInputs() Inputs {
	return Inputs{
		Sales: aggregate.SalesSummary{
			HourlyRevenue: []aggregate.HourRevenue{{Hour: 12, Revenue: 420}, {Hour: 18, Revenue: 380}},
		},
		Menu: aggregate.MenuSummary{
			Profits: []aggregate.ItemProfit{{Name: "Burger", Count: 12, Profit: 96}},
		},
		Loyalty: aggregate.LoyaltySummary{
			VisitBands: []aggregate.VisitBand{
				{Label: "1-2 visits", Customers: 3},
				{Label: "3-5 visits", Customers: 2},
				{Label: "6-10 visits", Customers: 1},
				{Label: "11+ visits", Customers: 2},
			},
		},
		Inventory: aggregate.InventorySummary{
			LowStock: []aggregate.LowStockAlert{{Name: "Beef", StockRatio: 0.2}},
			TopWaste: []aggregate.IngredientWaste{{Name: "Cream", WasteCost: 14.5}},
		},
		Staff: aggregate.StaffSummary{
			Highlights: []string{"Sarah (Server): Excellent attendance"},
		},
		Marketing: aggregate.MarketingSummary{
			TopBySpendIncrease: []aggregate.PromotionImpact{{Code: "BRUNCH10", AvgSpendIncrease: 8}},
		},
		Reviews: aggregate.ReviewSummary{
			NegativeExcerpts: []string{"Fries were cold"},
		},
		Reservations: aggregate.ReservationSummary{
			Statuses: []aggregate.StatusCount{{Status: aggregate.StatusNoShow, Count: 2}},
		},
		Ratios: ratio.Ratios{
			FoodCostPercent: 32, FoodCostFlag: ratio.HealthWarning,
			LaborCostPercent: 36, LaborCostFlag: ratio.HealthWarning,
			ProfitMarginPercent: 12, ProfitMarginFlag: ratio.HealthWarning,
		},
	}
}

func TestSynthesizeAllRulesFire(t *testing.T) {
	r := Synthesize(fullInputs())

	require.Len(t, r.Immediate, 4)
	assert.Contains(t, r.Immediate[0], "Beef")
	assert.Contains(t, r.Immediate[1], "Cream")
	assert.Contains(t, r.Immediate[2], "2 no-show")
	assert.Contains(t, r.Immediate[3], "1 negative review")

	require.Len(t, r.ShortTerm, 4)
	assert.Contains(t, r.ShortTerm[0], "32.00%")
	assert.Contains(t, r.ShortTerm[1], "36.00%")
	assert.Contains(t, r.ShortTerm[2], "12:00 peak")
	assert.Contains(t, r.ShortTerm[3], "Sarah")

	require.Len(t, r.LongTerm, 5)
	assert.Contains(t, r.LongTerm[0], "Burger")
	assert.Contains(t, r.LongTerm[1], "BRUNCH10")
	assert.Contains(t, r.LongTerm[2], "2 guest(s) with 11+ visits")
	assert.Contains(t, r.LongTerm[3], "12.00%")
	assert.Contains(t, r.LongTerm[4], "daily")
}

func TestSynthesizeQuietDay(t *testing.T) {
	in := Inputs{
		Ratios: ratio.Ratios{
			FoodCostFlag: ratio.HealthHealthy, LaborCostFlag: ratio.HealthHealthy,
			ProfitMarginFlag: ratio.HealthHealthy,
		},
	}

	r := Synthesize(in)

	assert.Empty(t, r.Immediate)
	assert.Empty(t, r.ShortTerm)
	// The standing daily-report reminder is always present.
	require.Len(t, r.LongTerm, 1)
	assert.Contains(t, r.LongTerm[0], "daily")
}

func TestSynthesizeDeterminism(t *testing.T) {
	first := Synthesize(fullInputs())
	second := Synthesize(fullInputs())
	assert.True(t, reflect.DeepEqual(first, second))
}
