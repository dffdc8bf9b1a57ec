package aggregate

import (
	"fmt"

	"brasserie/internal/dataset"
)

// Required finance metric names.
const (
	MetricGrossSales = "Gross_Sales"
	MetricTotalCOGS  = "Total_COGS"
	MetricLaborCost  = "Labor_Cost"
	MetricNetProfit  = "Net_Profit_Before_Tax"
)

// MissingMetricError indicates that a required financial scalar is absent
// from the finance table.
type MissingMetricError struct {
	Metric string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("missing required financial metric: %s", e.Metric)
}

// FinanceSummary holds the four required scalars extracted from the finance
// table.
type FinanceSummary struct {
	GrossSales float64 `json:"gross_sales"`
	TotalCOGS  float64 `json:"total_cogs"`
	LaborCost  float64 `json:"labor_cost"`
	NetProfit  float64 `json:"net_profit"`
}

// Finance extracts the required scalars from the finance table. The first
// occurrence of a metric name wins; a missing required metric is fatal.
func Finance(metrics []dataset.FinancialMetric) (FinanceSummary, error) {
	values := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		if _, ok := values[m.Name]; !ok {
			values[m.Name] = m.Value
		}
	}

	f := FinanceSummary{}
	for _, req := range []struct {
		name string
		dst  *float64
	}{
		{MetricGrossSales, &f.GrossSales},
		{MetricTotalCOGS, &f.TotalCOGS},
		{MetricLaborCost, &f.LaborCost},
		{MetricNetProfit, &f.NetProfit},
	} {
		v, ok := values[req.name]
		if !ok {
			return FinanceSummary{}, &MissingMetricError{Metric: req.name}
		}
		*req.dst = v
	}

	return f, nil
}
