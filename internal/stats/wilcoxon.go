package stats

import (
	"fmt"
	"math"
)

// WilcoxonResult holds a Wilcoxon rank-sum (Mann-Whitney) test result.
type WilcoxonResult struct {
	W      float64 // rank sum of the first group
	U      float64 // Mann-Whitney U of the first group
	Z      float64 // normal approximation statistic
	PValue float64 // two-sided
}

// WilcoxonRankSum performs a two-sided Wilcoxon rank-sum test comparing
// the distributions of x and y, using the normal approximation with tie
// correction and continuity correction.
func WilcoxonRankSum(x, y []float64) (*WilcoxonResult, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return nil, fmt.Errorf("wilcoxon: both groups must be non-empty (n1=%d, n2=%d)", n1, n2)
	}

	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks := Ranks(pooled)

	w := 0.0
	for i := 0; i < n1; i++ {
		w += ranks[i]
	}

	fn1, fn2 := float64(n1), float64(n2)
	n := fn1 + fn2
	u := w - fn1*(fn1+1)/2

	meanW := fn1 * (n + 1) / 2
	varW := fn1 * fn2 / 12 * ((n + 1) - tieCorrection(pooled)/(n*(n-1)))
	if varW <= 0 {
		// All pooled values tied; no distributional difference detectable.
		return &WilcoxonResult{W: w, U: u, Z: 0, PValue: 1}, nil
	}

	diff := w - meanW
	// Continuity correction toward the mean.
	switch {
	case diff > 0.5:
		diff -= 0.5
	case diff < -0.5:
		diff += 0.5
	default:
		diff = 0
	}
	z := diff / math.Sqrt(varW)

	return &WilcoxonResult{
		W:      w,
		U:      u,
		Z:      z,
		PValue: 2 * normalSF(math.Abs(z)),
	}, nil
}
