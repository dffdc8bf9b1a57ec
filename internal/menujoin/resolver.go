// Package menujoin joins parsed order lines against the menu catalog to
// produce per-item sales, revenue, cost and profit facts.
package menujoin

import (
	"math"
	"sort"

	"brasserie/internal/dataset"
	"brasserie/internal/orderline"
)

// ItemSales summarizes catalog-joined sales for one matched menu item.
type ItemSales struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
}

// Resolution is the outcome of joining order lines against the catalog.
// Counts covers every ordered name; Items only the names found in the
// catalog. Unmatched names participate in count-based metrics but are
// excluded from revenue and profit rollups.
type Resolution struct {
	Items     map[string]ItemSales `json:"items"`
	Counts    map[string]int       `json:"counts"`
	Unmatched []string             `json:"unmatched"`
}

// Resolve maps order-line item names to catalog records. Unmatched names are
// collected and reported, never dropped silently.
func Resolve(lines []orderline.Line, menu []dataset.MenuItem) *Resolution {
	catalog := make(map[string]dataset.MenuItem, len(menu))
	for _, item := range menu {
		catalog[item.Name] = item
	}

	counts := make(map[string]int)
	for _, line := range lines {
		counts[line.Item] += line.Quantity
	}

	items := make(map[string]ItemSales)
	unmatchedSet := make(map[string]struct{})
	for name, count := range counts {
		item, ok := catalog[name]
		if !ok {
			unmatchedSet[name] = struct{}{}
			continue
		}
		revenue := round2(float64(count) * item.Price)
		cost := round2(float64(count) * item.EstimatedCOGS)
		items[name] = ItemSales{
			Name:          name,
			Category:      item.Category,
			Count:         count,
			Revenue:       revenue,
			Cost:          cost,
			Profit:        round2(revenue - cost),
			MarginPercent: item.MarginPercent,
		}
	}

	unmatched := make([]string, 0, len(unmatchedSet))
	for name := range unmatchedSet {
		unmatched = append(unmatched, name)
	}
	sort.Strings(unmatched)

	return &Resolution{Items: items, Counts: counts, Unmatched: unmatched}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
