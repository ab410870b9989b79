package stats

import (
	"fmt"
	"math"
	"sort"
)

// ANOVAResult holds a one-way ANOVA result.
type ANOVAResult struct {
	F       float64
	DFB     int // between-groups degrees of freedom
	DFW     int // within-groups degrees of freedom
	MSW     float64
	PValue  float64
	GroupNs map[string]int
}

// OneWayANOVA performs a one-way analysis of variance over named groups.
// At least two groups with at least two observations in total beyond the
// group count are required.
func OneWayANOVA(groups map[string][]float64) (*ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, fmt.Errorf("anova: need at least 2 groups, got %d", k)
	}

	total := 0
	grandSum := 0.0
	for name, g := range groups {
		if len(g) == 0 {
			return nil, fmt.Errorf("anova: group %q is empty", name)
		}
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	if total <= k {
		return nil, fmt.Errorf("anova: %d observations across %d groups leaves no within-group freedom", total, k)
	}
	grandMean := grandSum / float64(total)

	ssb, ssw := 0.0, 0.0
	ns := make(map[string]int, k)
	for name, g := range groups {
		ns[name] = len(g)
		m := Mean(g)
		d := m - grandMean
		ssb += float64(len(g)) * d * d
		for _, v := range g {
			e := v - m
			ssw += e * e
		}
	}

	dfb := k - 1
	dfw := total - k
	msb := ssb / float64(dfb)
	msw := ssw / float64(dfw)

	var f, p float64
	if msw == 0 {
		if msb == 0 {
			f, p = 0, 1
		} else {
			f, p = math.Inf(1), 0
		}
	} else {
		f = msb / msw
		p = fDistSF(f, float64(dfb), float64(dfw))
	}

	return &ANOVAResult{F: f, DFB: dfb, DFW: dfw, MSW: msw, PValue: p, GroupNs: ns}, nil
}

// TukeyComparison is one pairwise comparison from Tukey's HSD procedure.
type TukeyComparison struct {
	GroupA      string
	GroupB      string
	MeanDiff    float64
	Q           float64
	Significant bool // at alpha = 0.05
}

// TukeyHSD performs Tukey's honestly-significant-difference procedure
// over all group pairs, using the ANOVA's within-group mean square. The
// unequal-n (Tukey-Kramer) form of the standard error is used.
// Significance is judged against the 0.05 studentized-range critical
// value for the group count and within-group degrees of freedom.
func TukeyHSD(groups map[string][]float64, anova *ANOVAResult) ([]TukeyComparison, error) {
	k := len(groups)
	if k < 2 {
		return nil, fmt.Errorf("tukey: need at least 2 groups, got %d", k)
	}
	if anova.MSW <= 0 {
		return nil, fmt.Errorf("tukey: within-group mean square must be positive")
	}

	names := make([]string, 0, k)
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	qCrit := studentizedRangeCritical(k, anova.DFW)

	var comparisons []TukeyComparison
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := groups[names[i]], groups[names[j]]
			diff := Mean(a) - Mean(b)
			se := math.Sqrt(anova.MSW / 2 * (1/float64(len(a)) + 1/float64(len(b))))
			q := math.Abs(diff) / se
			comparisons = append(comparisons, TukeyComparison{
				GroupA:      names[i],
				GroupB:      names[j],
				MeanDiff:    diff,
				Q:           q,
				Significant: q > qCrit,
			})
		}
	}
	return comparisons, nil
}

// studentizedRangeTable holds 0.05 upper critical values q(k, df) for
// k = 2..10 groups, indexed by within-group degrees of freedom.
var studentizedRangeTable = map[int][9]float64{
	5:   {3.64, 4.60, 5.22, 5.67, 6.03, 6.33, 6.58, 6.80, 6.99},
	10:  {3.15, 3.88, 4.33, 4.65, 4.91, 5.12, 5.30, 5.46, 5.60},
	15:  {3.01, 3.67, 4.08, 4.37, 4.59, 4.78, 4.94, 5.08, 5.20},
	20:  {2.95, 3.58, 3.96, 4.23, 4.45, 4.62, 4.77, 4.90, 5.01},
	30:  {2.89, 3.49, 3.85, 4.10, 4.30, 4.46, 4.60, 4.72, 4.82},
	60:  {2.83, 3.40, 3.74, 3.98, 4.16, 4.31, 4.44, 4.55, 4.65},
	120: {2.80, 3.36, 3.68, 3.92, 4.10, 4.24, 4.36, 4.47, 4.56},
}

// asymptotic (df -> infinity) row of the table.
var studentizedRangeAsymptotic = [9]float64{2.77, 3.31, 3.63, 3.86, 4.03, 4.17, 4.29, 4.39, 4.47}

// studentizedRangeCritical returns the 0.05 critical value q(k, df),
// using the largest tabled df not exceeding df. Using a smaller df gives
// a larger critical value, so lookup error is conservative.
func studentizedRangeCritical(k, df int) float64 {
	if k < 2 {
		k = 2
	}
	if k > 10 {
		k = 10
	}

	tabledDF := 5
	for _, d := range []int{5, 10, 15, 20, 30, 60, 120} {
		if df >= d {
			tabledDF = d
		}
	}
	if df > 120 {
		return studentizedRangeAsymptotic[k-2]
	}
	return studentizedRangeTable[tabledDF][k-2]
}
