package backtest

import "gonum.org/v1/gonum/mat"

// Prune greedily reduces a weight vector to at most kFinal nonzero entries
// (spec §4.6): repeatedly drop the smallest-weight asset (ties broken by
// lowest index), rebuild the mean/covariance sub-problem on the survivors,
// and re-optimize, until kFinal remain. symbols, mu, and sigma must all be
// indexed consistently with w.
func Prune(symbols []string, mu []float64, sigma *mat.SymDense, w []float64, kFinal int, wMin, wMax float64) ([]string, []float64, error) {
	curSymbols := append([]string(nil), symbols...)
	curMu := append([]float64(nil), mu...)
	curW := append([]float64(nil), w...)
	curSigma := sigma

	for len(curSymbols) > kFinal {
		drop := 0
		for i, v := range curW {
			if v < curW[drop] {
				drop = i
			}
		}

		n := len(curSymbols) - 1
		nextSymbols := make([]string, 0, n)
		nextMu := make([]float64, 0, n)
		idxMap := make([]int, 0, n)
		for i, sym := range curSymbols {
			if i == drop {
				continue
			}
			nextSymbols = append(nextSymbols, sym)
			nextMu = append(nextMu, curMu[i])
			idxMap = append(idxMap, i)
		}

		nextSigma := mat.NewSymDense(n, nil)
		for a := 0; a < n; a++ {
			for b := a; b < n; b++ {
				nextSigma.SetSym(a, b, curSigma.At(idxMap[a], idxMap[b]))
			}
		}

		nextW, err := Optimize(nextMu, nextSigma, wMin, wMax)
		if err != nil {
			return nil, nil, err
		}

		curSymbols, curMu, curSigma, curW = nextSymbols, nextMu, nextSigma, nextW
	}

	return curSymbols, curW, nil
}
