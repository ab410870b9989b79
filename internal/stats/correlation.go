package stats

import (
	"fmt"
	"math"
)

// CorrelationResult holds a correlation estimate with its two-sided
// p-value from the t approximation.
type CorrelationResult struct {
	R      float64
	N      int
	PValue float64
}

// Pearson computes the Pearson product-moment correlation between paired
// slices x and y.
func Pearson(x, y []float64) (*CorrelationResult, error) {
	n := len(x)
	if n != len(y) {
		return nil, fmt.Errorf("pearson: length mismatch (%d vs %d)", n, len(y))
	}
	if n < 3 {
		return nil, fmt.Errorf("pearson: need at least 3 pairs, got %d", n)
	}

	mx, my := Mean(x), Mean(y)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return nil, fmt.Errorf("pearson: zero variance input")
	}

	r := sxy / math.Sqrt(sxx*syy)
	return &CorrelationResult{R: r, N: n, PValue: correlationPValue(r, n)}, nil
}

// Spearman computes the Spearman rank correlation between paired slices
// x and y (Pearson correlation of midrank-transformed values).
func Spearman(x, y []float64) (*CorrelationResult, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("spearman: length mismatch (%d vs %d)", len(x), len(y))
	}
	return Pearson(Ranks(x), Ranks(y))
}

func correlationPValue(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	return tDistSF2(t, df)
}
