package stats

import "fmt"

// ChiSquaredResult holds a chi-squared test of independence result.
type ChiSquaredResult struct {
	Statistic float64
	DF        int
	PValue    float64
}

// ChiSquaredIndependence tests independence of the row and column factors
// of a contingency table of observed counts. The table must be
// rectangular with at least two rows and two columns, and every row and
// column must have a positive total.
func ChiSquaredIndependence(observed [][]float64) (*ChiSquaredResult, error) {
	rows := len(observed)
	if rows < 2 {
		return nil, fmt.Errorf("chisq: need at least 2 rows, got %d", rows)
	}
	cols := len(observed[0])
	if cols < 2 {
		return nil, fmt.Errorf("chisq: need at least 2 columns, got %d", cols)
	}

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	grand := 0.0
	for i, row := range observed {
		if len(row) != cols {
			return nil, fmt.Errorf("chisq: row %d has %d columns, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("chisq: negative count %v at (%d,%d)", v, i, j)
			}
			rowTotals[i] += v
			colTotals[j] += v
			grand += v
		}
	}
	for i, t := range rowTotals {
		if t == 0 {
			return nil, fmt.Errorf("chisq: row %d has zero total", i)
		}
	}
	for j, t := range colTotals {
		if t == 0 {
			return nil, fmt.Errorf("chisq: column %d has zero total", j)
		}
	}

	statistic := 0.0
	for i := range observed {
		for j := range observed[i] {
			expected := rowTotals[i] * colTotals[j] / grand
			d := observed[i][j] - expected
			statistic += d * d / expected
		}
	}

	df := (rows - 1) * (cols - 1)
	return &ChiSquaredResult{
		Statistic: statistic,
		DF:        df,
		PValue:    chiSquaredSF(statistic, float64(df)),
	}, nil
}
