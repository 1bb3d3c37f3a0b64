package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestToReturns_ShortInput(t *testing.T) {
	assert.Nil(t, ToReturns(nil))
	assert.Nil(t, ToReturns([]*float64{ptr(1)}))
}

func TestToReturns_SimpleCase(t *testing.T) {
	prices := []*float64{ptr(100), ptr(110), ptr(99)}
	out := ToReturns(prices)
	require.Len(t, out, 2)
	require.NotNil(t, out[0])
	assert.InDelta(t, 0.10, *out[0], 1e-9)
	require.NotNil(t, out[1])
	assert.InDelta(t, -0.10, *out[1], 1e-9)
}

func TestToReturns_MissingAndZeroPrices(t *testing.T) {
	prices := []*float64{ptr(100), nil, ptr(50), ptr(0), ptr(10)}
	out := ToReturns(prices)
	require.Len(t, out, 4)
	assert.Nil(t, out[0]) // p1 missing
	assert.Nil(t, out[1]) // p0 missing
	require.NotNil(t, out[2])
	assert.InDelta(t, -1.0, *out[2], 1e-9) // p1 == 0 is a valid (if extreme) ratio
	assert.Nil(t, out[3])                  // p0 == 0, undefined
}

func TestMonthlySeries_AlignsToGrid(t *testing.T) {
	grid := []timeKey{dayKey(d(2024, 1, 31)), dayKey(d(2024, 2, 29)), dayKey(d(2024, 3, 31))}
	priceAt := map[timeKey]float64{
		grid[0]: 100,
		grid[1]: 105,
		// grid[2] missing
	}
	out := monthlySeries(grid, priceAt)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Return)
	assert.InDelta(t, 0.05, *out[0].Return, 1e-9)
	assert.Nil(t, out[1].Return)
}
