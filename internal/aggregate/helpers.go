// Package aggregate computes the per-domain rollups of one analysis run.
// Every aggregator is a pure function: tables in, rollup structure out, with
// deterministic ordering (descending by metric, ascending by name on ties).
package aggregate

import "math"

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percent returns part/whole as a percentage rounded to one decimal, or 0
// when the whole is zero.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}
