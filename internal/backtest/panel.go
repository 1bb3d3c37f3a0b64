package backtest

import (
	"gonum.org/v1/gonum/mat"
)

// AssemblePanel builds the dense, coverage-filtered, demeaned T×N return
// matrix described in spec §4.4 from one ragged monthly-return series per
// eligible symbol, already aligned to the same month-end grid (so all
// series have equal length; missing months are nil, not zero).
//
// Column filter: drop columns whose present-value fraction < C_col.
// Row filter: on the remaining columns, drop rows whose present-value
// fraction < C_row. Demean + impute: for each kept column, subtract the
// mean of its present values on kept rows from present entries and replace
// absent entries with 0 — equivalent to mean substitution once demeaned,
// which is unbiased under missing-at-random (spec §4.4 rationale).
func AssemblePanel(series map[string][]MonthlyPoint, symbolOrder []string) *Panel {
	n := len(symbolOrder)
	if n == 0 {
		return &Panel{Returns: &mat.Dense{}}
	}
	t := len(series[symbolOrder[0]])

	// Column filter.
	keptCols := make([]int, 0, n)
	for j, sym := range symbolOrder {
		present := 0
		for _, p := range series[sym] {
			if p.Return != nil {
				present++
			}
		}
		if t > 0 && float64(present)/float64(t) >= colCoverageThreshold {
			keptCols = append(keptCols, j)
		}
	}
	if len(keptCols) == 0 {
		return &Panel{Returns: &mat.Dense{}}
	}

	// Row filter, restricted to kept columns.
	keptRows := make([]int, 0, t)
	for i := 0; i < t; i++ {
		present := 0
		for _, j := range keptCols {
			if series[symbolOrder[j]][i].Return != nil {
				present++
			}
		}
		if float64(present)/float64(len(keptCols)) >= rowCoverageThreshold {
			keptRows = append(keptRows, i)
		}
	}

	tOut := len(keptRows)
	nOut := len(keptCols)

	rawMeans := make([]float64, nOut)
	data := make([][]float64, tOut)
	for i := range data {
		data[i] = make([]float64, nOut)
	}

	for colIdx, j := range keptCols {
		sym := symbolOrder[j]
		sum := 0.0
		count := 0
		for _, rowIdx := range keptRows {
			if r := series[sym][rowIdx].Return; r != nil {
				sum += *r
				count++
			}
		}
		mean := 0.0
		if count > 0 {
			mean = sum / float64(count)
		}
		rawMeans[colIdx] = mean

		for rowPos, rowIdx := range keptRows {
			if r := series[sym][rowIdx].Return; r != nil {
				data[rowPos][colIdx] = *r - mean
			} else {
				data[rowPos][colIdx] = 0
			}
		}
	}

	colSymbols := make([]string, nOut)
	for i, j := range keptCols {
		colSymbols[i] = symbolOrder[j]
	}

	if tOut == 0 {
		// mat.NewDense panics on a zero dimension; the row filter can empty
		// out every row on otherwise-valid sparse input, so report an empty
		// panel instead (orchestrator.go's row-count guard turns it into
		// ErrNoResult, spec §4.8/§7.1).
		return &Panel{
			Returns:    &mat.Dense{},
			RawMeans:   rawMeans,
			KeptRows:   keptRows,
			KeptCols:   keptCols,
			ColSymbols: colSymbols,
		}
	}

	flat := make([]float64, tOut*nOut)
	for i := 0; i < tOut; i++ {
		copy(flat[i*nOut:(i+1)*nOut], data[i])
	}

	return &Panel{
		Returns:    mat.NewDense(tOut, nOut, flat),
		RawMeans:   rawMeans,
		KeptRows:   keptRows,
		KeptCols:   keptCols,
		ColSymbols: colSymbols,
	}
}
