package aggregate

import (
	"sort"

	"brasserie/internal/dataset"
	"brasserie/internal/ratio"
)

// lowStockThreshold flags an ingredient when ending/starting falls below it.
const lowStockThreshold = 0.3

// IngredientWaste is one entry of the waste-cost ranking.
type IngredientWaste struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Wasted    float64 `json:"wasted"`
	WasteCost float64 `json:"waste_cost"`
}

// IngredientUsage is one entry of the usage-cost ranking.
type IngredientUsage struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Used     float64 `json:"used"`
	UsedCost float64 `json:"used_cost"`
}

// LowStockAlert flags an ingredient running below the stock-ratio threshold.
// The alert never mutates the underlying stock row.
type LowStockAlert struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	EndingQty  float64 `json:"ending_qty"`
	StockRatio float64 `json:"stock_ratio"`
}

// InventorySummary is the rollup of the inventory ledger.
type InventorySummary struct {
	TotalUsedCost  float64           `json:"total_used_cost"`
	TotalWasteCost float64           `json:"total_waste_cost"`
	WastePercent   float64           `json:"waste_percent"`
	TopWaste       []IngredientWaste `json:"top_waste"`
	LowStock       []LowStockAlert   `json:"low_stock"`
	TopUsage       []IngredientUsage `json:"top_usage"`
}

// Inventory computes waste and usage rollups from the inventory ledger.
// Waste cost is derived per ingredient as wasted quantity times unit cost.
// When total used cost and total waste cost are both zero, the waste
// percentage is a DivisionGuardError rather than a fabricated number.
func Inventory(stock []dataset.IngredientStock, topN int) (InventorySummary, error) {
	inv := InventorySummary{}

	waste := make([]IngredientWaste, 0, len(stock))
	usage := make([]IngredientUsage, 0, len(stock))

	for _, s := range stock {
		wasteCost := round2(s.Wasted * s.UnitCost)
		inv.TotalWasteCost += wasteCost
		inv.TotalUsedCost += s.TotalUsedCost

		waste = append(waste, IngredientWaste{Name: s.Name, Unit: s.Unit, Wasted: s.Wasted, WasteCost: wasteCost})
		usage = append(usage, IngredientUsage{Name: s.Name, Unit: s.Unit, Used: s.UsedToday, UsedCost: round2(s.TotalUsedCost)})

		// A starting quantity of zero cannot produce a stock ratio.
		if s.StartingQty > 0 {
			r := s.EndingQty / s.StartingQty
			if r < lowStockThreshold {
				inv.LowStock = append(inv.LowStock, LowStockAlert{
					Name:       s.Name,
					Unit:       s.Unit,
					EndingQty:  s.EndingQty,
					StockRatio: round2(r),
				})
			}
		}
	}

	inv.TotalWasteCost = round2(inv.TotalWasteCost)
	inv.TotalUsedCost = round2(inv.TotalUsedCost)

	denominator := inv.TotalUsedCost + inv.TotalWasteCost
	if denominator == 0 {
		return InventorySummary{}, &ratio.DivisionGuardError{
			Ratio:       "waste percentage",
			Denominator: "combined used and waste cost",
		}
	}
	inv.WastePercent = round1(inv.TotalWasteCost / denominator * 100)

	sort.Slice(waste, func(i, j int) bool {
		if waste[i].WasteCost != waste[j].WasteCost {
			return waste[i].WasteCost > waste[j].WasteCost
		}
		return waste[i].Name < waste[j].Name
	})
	inv.TopWaste = topWaste(waste, topN)

	sort.Slice(usage, func(i, j int) bool {
		if usage[i].UsedCost != usage[j].UsedCost {
			return usage[i].UsedCost > usage[j].UsedCost
		}
		return usage[i].Name < usage[j].Name
	})
	inv.TopUsage = topUsage(usage, topN)

	sort.Slice(inv.LowStock, func(i, j int) bool {
		if inv.LowStock[i].StockRatio != inv.LowStock[j].StockRatio {
			return inv.LowStock[i].StockRatio < inv.LowStock[j].StockRatio
		}
		return inv.LowStock[i].Name < inv.LowStock[j].Name
	})

	return inv, nil
}

func topWaste(waste []IngredientWaste, n int) []IngredientWaste {
	if n > 0 && len(waste) > n {
		waste = waste[:n]
	}
	return waste
}

func topUsage(usage []IngredientUsage, n int) []IngredientUsage {
	if n > 0 && len(usage) > n {
		usage = usage[:n]
	}
	return usage
}
