package backtest

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Optimize computes the bounded mean-variance heuristic weight vector
// described in spec §4.5: solve Σw = μ for the unconstrained direction,
// clamp negative entries to zero, normalize to sum to one, then iteratively
// enforce [wMin, wMax] bounds by redistributing mass between "needy" and
// "donor" assets. Mirrors the clamp-then-project shape of the teacher's
// projectToBoundsMap, extended with the iterative renormalization spec §4.5
// requires since a single clamp does not preserve sum-to-one.
func Optimize(mu []float64, sigma *mat.SymDense, wMin, wMax float64) ([]float64, error) {
	n := len(mu)
	if n == 0 {
		return nil, ErrNoResult
	}

	w, err := solveUnconstrained(mu, sigma)
	if err != nil {
		// One retry adding 10% of each diagonal entry's own magnitude
		// before declaring it fatal (spec §4.5 step 1 / §7.2).
		bumped := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				v := sigma.At(i, j)
				if i == j {
					v += 0.1 * math.Abs(v)
				}
				bumped.SetSym(i, j, v)
			}
		}
		w, err = solveUnconstrained(mu, bumped)
		if err != nil {
			return nil, &NumericalError{Period: "", N: n, T: 0, Err: err}
		}
	}

	for i := range w {
		if w[i] < 0 {
			w[i] = 0
		}
	}
	normalize(w)

	return applyBounds(w, wMin, wMax), nil
}

func solveUnconstrained(mu []float64, sigma *mat.SymDense) ([]float64, error) {
	n := len(mu)
	a := mat.DenseCopyOf(sigma)
	b := mat.NewDense(n, 1, mu)

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return nil, err
	}

	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = x.At(i, 0)
	}
	return w, nil
}

func normalize(w []float64) {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		// Degenerate case: fall back to equal weight (spec §4.5 edge case).
		eq := 1.0 / float64(len(w))
		for i := range w {
			w[i] = eq
		}
		return
	}
	for i := range w {
		w[i] /= sum
	}
}

// applyBounds enforces [wMin, wMax] per spec §4.5 step 4, iterating up to
// applyBoundsIters times:
//  1. Clamp each w_i to [0, wMax]; renormalize.
//  2. Needy set N = {i : w_i < wMin}; set w_i = wMin for i in N; deficit =
//     sum over N of (wMin - w_i_before).
//  3. Donors D = complement of N. donorSum = sum over D of (w_i - wMin). If
//     donorSum > 1e-9, subtract from each donor proportionally to
//     (w_i - wMin)/donorSum * deficit.
//  4. Renormalize.
func applyBounds(w []float64, wMin, wMax float64) []float64 {
	n := len(w)
	out := append([]float64(nil), w...)

	for iter := 0; iter < applyBoundsIters; iter++ {
		for i := range out {
			if out[i] < 0 {
				out[i] = 0
			}
			if out[i] > wMax {
				out[i] = wMax
			}
		}
		normalize(out)

		isNeedy := make([]bool, n)
		deficit := 0.0
		for i, v := range out {
			if v < wMin {
				isNeedy[i] = true
				deficit += wMin - v
			}
		}
		for i := range out {
			if isNeedy[i] {
				out[i] = wMin
			}
		}

		donorSum := 0.0
		for i, v := range out {
			if !isNeedy[i] {
				donorSum += v - wMin
			}
		}
		if donorSum > 1e-9 {
			for i, v := range out {
				if !isNeedy[i] {
					out[i] = v - (v-wMin)/donorSum*deficit
				}
			}
		}

		normalize(out)
	}

	return out
}
