package ratio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHealthyBoundaries(t *testing.T) {
	// Boundary values are inclusive on the healthy side.
	r, err := Compute(1000, 300, 350, 150)
	require.NoError(t, err)

	assert.Equal(t, 30.0, r.FoodCostPercent)
	assert.Equal(t, HealthHealthy, r.FoodCostFlag)
	assert.Equal(t, 35.0, r.LaborCostPercent)
	assert.Equal(t, HealthHealthy, r.LaborCostFlag)
	assert.Equal(t, 15.0, r.ProfitMarginPercent)
	assert.Equal(t, HealthHealthy, r.ProfitMarginFlag)
}

func TestComputeWarnings(t *testing.T) {
	r, err := Compute(1000, 301, 351, 149)
	require.NoError(t, err)

	assert.Equal(t, HealthWarning, r.FoodCostFlag)
	assert.Equal(t, HealthWarning, r.LaborCostFlag)
	assert.Equal(t, HealthWarning, r.ProfitMarginFlag)
}

func TestComputeRounding(t *testing.T) {
	r, err := Compute(3000, 1000, 900, 500)
	require.NoError(t, err)

	assert.Equal(t, 33.33, r.FoodCostPercent)
	assert.Equal(t, 30.0, r.LaborCostPercent)
	assert.Equal(t, 16.67, r.ProfitMarginPercent)
}

func TestComputeZeroGrossSales(t *testing.T) {
	_, err := Compute(0, 300, 350, 150)
	require.Error(t, err)

	var guardErr *DivisionGuardError
	require.True(t, errors.As(err, &guardErr))
	assert.Equal(t, "gross sales", guardErr.Denominator)
}
