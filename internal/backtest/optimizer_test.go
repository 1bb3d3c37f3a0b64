package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"
)

func diagSigma(diag []float64, off float64) *mat.SymDense {
	n := len(diag)
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if i == j {
				s.SetSym(i, j, diag[i])
			} else {
				s.SetSym(i, j, off)
			}
		}
	}
	return s
}

// Minimal scenario from spec §8: 2 symbols, feasible bounds, sum ≈ 1.
func TestOptimize_FeasibleBoundsSumToOne(t *testing.T) {
	mu := []float64{0.01, 0.015}
	sigma := diagSigma([]float64{0.04, 0.03}, 0.005)

	w, err := Optimize(mu, sigma, 0.4, 0.6)
	require.NoError(t, err)
	require.Len(t, w, 2)

	sum := w[0] + w[1]
	assert.InDelta(t, 1.0, sum, 1e-6)
	for _, v := range w {
		assert.GreaterOrEqual(t, v, 0.4-1e-9)
		assert.LessOrEqual(t, v, 0.6+1e-9)
	}
}

// Infeasible scenario from spec §8: K*Wmin > 1. Engine still returns a
// finite, nonnegative vector with positive sum; no hard failure.
func TestOptimize_InfeasibleBoundsStillReturnsBestEffort(t *testing.T) {
	mu := []float64{0.01, 0.02}
	sigma := diagSigma([]float64{0.04, 0.05}, 0.01)

	w, err := Optimize(mu, sigma, 0.6, 0.9)
	require.NoError(t, err)
	require.Len(t, w, 2)

	sum := 0.0
	for _, v := range w {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.Greater(t, sum, 0.0)
}

func TestNormalize_DegenerateFallsBackToEqualWeight(t *testing.T) {
	w := []float64{0, 0, 0}
	normalize(w)
	for _, v := range w {
		assert.InDelta(t, 1.0/3.0, v, 1e-9)
	}
}

func TestApplyBounds_RespectsBoundsWhenFeasible(t *testing.T) {
	w := []float64{0.01, 0.01, 0.01, 0.97}
	out := applyBounds(w, 0.1, 0.5)
	sum := 0.0
	for _, v := range out {
		assert.GreaterOrEqual(t, v, 0.1-1e-9)
		assert.LessOrEqual(t, v, 0.5+1e-9)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}
