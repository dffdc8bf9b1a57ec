package aggregate

import (
	"testing"

	"brasserie/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func financeFixture() []dataset.FinancialMetric {
	return []dataset.FinancialMetric{
		{Name: "Gross_Sales", Value: 12000},
		{Name: "Total_COGS", Value: 3600},
		{Name: "Labor_Cost", Value: 4200},
		{Name: "Net_Profit_Before_Tax", Value: 1800},
		{Name: "Rent", Value: 2000},
	}
}

func TestFinanceExtractsRequiredMetrics(t *testing.T) {
	f, err := Finance(financeFixture())
	require.NoError(t, err)

	assert.Equal(t, FinanceSummary{
		GrossSales: 12000,
		TotalCOGS:  3600,
		LaborCost:  4200,
		NetProfit:  1800,
	}, f)
}

func TestFinanceFirstOccurrenceWins(t *testing.T) {
	metrics := append(financeFixture(), dataset.FinancialMetric{Name: "Gross_Sales", Value: 99999})

	f, err := Finance(metrics)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, f.GrossSales)
}

func TestFinanceMissingMetric(t *testing.T) {
	metrics := []dataset.FinancialMetric{
		{Name: "Gross_Sales", Value: 12000},
		{Name: "Total_COGS", Value: 3600},
		{Name: "Net_Profit_Before_Tax", Value: 1800},
	}

	_, err := Finance(metrics)
	var missing *MissingMetricError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, MetricLaborCost, missing.Metric)
	assert.Contains(t, err.Error(), "Labor_Cost")
}
