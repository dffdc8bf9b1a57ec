package orderline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImplicitAndExplicitQuantities(t *testing.T) {
	lines, err := Parse("TX-001", "Burger (2), Fries")
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, Line{Item: "Burger", Quantity: 2, TransactionID: "TX-001"}, lines[0])
	assert.Equal(t, Line{Item: "Fries", Quantity: 1, TransactionID: "TX-001"}, lines[1])
	assert.Equal(t, 3, TotalQuantity(lines))
}

func TestParseQuantitySum(t *testing.T) {
	// Total quantity equals the sum of explicit counts plus the number of
	// implicit-quantity entries.
	cases := []struct {
		text string
		want int
	}{
		{"Caesar Salad", 1},
		{"Caesar Salad (3)", 3},
		{"Burger (2), Fries, Cola (4)", 7},
		{"A, B, C", 3},
		{"Iced Tea (2), Iced Tea (2)", 4},
	}

	for _, tc := range cases {
		lines, err := Parse("TX-002", tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, TotalQuantity(lines), tc.text)
	}
}

func TestParseKeepsEntryOrder(t *testing.T) {
	lines, err := Parse("TX-003", "Soup, Steak (2), Espresso")
	require.NoError(t, err)

	var names []string
	for _, l := range lines {
		names = append(names, l.Item)
	}
	assert.Equal(t, []string{"Soup", "Steak", "Espresso"}, names)
}

func TestParseMalformedEntries(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"non-integer quantity", "Burger (two)"},
		{"empty quantity", "Burger ()"},
		{"zero quantity", "Burger (0)"},
		{"negative quantity", "Burger (-1)"},
		{"unbalanced open", "Burger (2"},
		{"unbalanced close", "Burger 2)"},
		{"missing name", "(2)"},
		{"trailing text", "Burger (2) extra"},
		{"empty list", "   "},
		{"empty entry", "Burger, , Fries"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("TX-004", tc.text)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "TX-004", parseErr.TransactionID)
			assert.NotEmpty(t, parseErr.Reason)
		})
	}
}

func TestParseErrorNamesOffendingSubstring(t *testing.T) {
	_, err := Parse("TX-005", "Fries, Burger (two)")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Burger (two)", parseErr.Input)
	assert.Contains(t, parseErr.Error(), "TX-005")
	assert.Contains(t, parseErr.Error(), "Burger (two)")
}
