package aggregate

import (
	"sort"

	"brasserie/internal/menujoin"
)

// ItemPopularity is one entry of the popularity ranking. Unmatched names
// appear here too; only matched items carry revenue facts.
type ItemPopularity struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue,omitempty"`
	Matched bool    `json:"matched"`
}

// CategorySales summarizes matched sales for one menu category.
type CategorySales struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Revenue  float64 `json:"revenue"`
}

// ItemProfit is one entry of the per-item profit ranking.
type ItemProfit struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Profit float64 `json:"profit"`
}

// MenuSummary is the popularity and profitability rollup of the joined
// order-line facts.
type MenuSummary struct {
	Popularity []ItemPopularity `json:"popularity"`
	Categories []CategorySales  `json:"categories"`
	Profits    []ItemProfit     `json:"profits"`
	Unmatched  []string         `json:"unmatched,omitempty"`
}

// Menu ranks items by popularity and profit and rolls matched sales up per
// category. Rankings are descending with ascending-name tie-breaks so
// repeated runs produce identical output.
func Menu(res *menujoin.Resolution) MenuSummary {
	m := MenuSummary{Unmatched: res.Unmatched}

	m.Popularity = make([]ItemPopularity, 0, len(res.Counts))
	for name, count := range res.Counts {
		entry := ItemPopularity{Name: name, Count: count}
		if item, ok := res.Items[name]; ok {
			entry.Revenue = item.Revenue
			entry.Matched = true
		}
		m.Popularity = append(m.Popularity, entry)
	}
	sort.Slice(m.Popularity, func(i, j int) bool {
		if m.Popularity[i].Count != m.Popularity[j].Count {
			return m.Popularity[i].Count > m.Popularity[j].Count
		}
		return m.Popularity[i].Name < m.Popularity[j].Name
	})

	categories := make(map[string]*CategorySales)
	for _, item := range res.Items {
		c := categories[item.Category]
		if c == nil {
			c = &CategorySales{Category: item.Category}
			categories[item.Category] = c
		}
		c.Count += item.Count
		c.Revenue += item.Revenue
	}
	m.Categories = make([]CategorySales, 0, len(categories))
	for _, c := range categories {
		c.Revenue = round2(c.Revenue)
		m.Categories = append(m.Categories, *c)
	}
	sort.Slice(m.Categories, func(i, j int) bool {
		if m.Categories[i].Revenue != m.Categories[j].Revenue {
			return m.Categories[i].Revenue > m.Categories[j].Revenue
		}
		return m.Categories[i].Category < m.Categories[j].Category
	})

	m.Profits = make([]ItemProfit, 0, len(res.Items))
	for _, item := range res.Items {
		m.Profits = append(m.Profits, ItemProfit{Name: item.Name, Count: item.Count, Profit: item.Profit})
	}
	sort.Slice(m.Profits, func(i, j int) bool {
		if m.Profits[i].Profit != m.Profits[j].Profit {
			return m.Profits[i].Profit > m.Profits[j].Profit
		}
		return m.Profits[i].Name < m.Profits[j].Name
	})

	return m
}
