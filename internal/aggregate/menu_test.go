package aggregate

import (
	"testing"

	"brasserie/internal/menujoin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuFixture() *menujoin.Resolution {
	return &menujoin.Resolution{
		Items: map[string]menujoin.ItemSales{
			"Burger": {
				Name: "Burger", Category: "Mains", Count: 3,
				Revenue: 37.50, Cost: 12, Profit: 25.50, MarginPercent: 68,
			},
			"Fries": {
				Name: "Fries", Category: "Sides", Count: 3,
				Revenue: 12, Cost: 3, Profit: 9, MarginPercent: 75,
			},
		},
		Counts:    map[string]int{"Burger": 3, "Fries": 3, "Mystery Pie": 1},
		Unmatched: []string{"Mystery Pie"},
	}
}

func TestMenuPopularityTieBreak(t *testing.T) {
	m := Menu(menuFixture())

	require.Len(t, m.Popularity, 3)
	// Burger and Fries both sold 3; name ascending breaks the tie.
	assert.Equal(t, "Burger", m.Popularity[0].Name)
	assert.Equal(t, "Fries", m.Popularity[1].Name)
	assert.Equal(t, "Mystery Pie", m.Popularity[2].Name)
	assert.False(t, m.Popularity[2].Matched)
	assert.Equal(t, 0.0, m.Popularity[2].Revenue)
}

func TestMenuCategoryRollup(t *testing.T) {
	m := Menu(menuFixture())

	require.Len(t, m.Categories, 2)
	assert.Equal(t, CategorySales{Category: "Mains", Count: 3, Revenue: 37.50}, m.Categories[0])
	assert.Equal(t, CategorySales{Category: "Sides", Count: 3, Revenue: 12}, m.Categories[1])
}

func TestMenuProfitRanking(t *testing.T) {
	m := Menu(menuFixture())

	require.Len(t, m.Profits, 2)
	assert.Equal(t, ItemProfit{Name: "Burger", Count: 3, Profit: 25.50}, m.Profits[0])
	assert.Equal(t, ItemProfit{Name: "Fries", Count: 3, Profit: 9}, m.Profits[1])
}

func TestMenuCarriesUnmatched(t *testing.T) {
	m := Menu(menuFixture())
	assert.Equal(t, []string{"Mystery Pie"}, m.Unmatched)
}
