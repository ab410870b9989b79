// Package stats implements the classical group-comparison tests used by
// the summarize command: Wilcoxon rank-sum, one-way ANOVA with Tukey HSD,
// chi-squared independence, and Pearson/Spearman correlation.
package stats

import "sort"

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Variance returns the sample variance (n-1 denominator), or 0 when
// fewer than two values exist.
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := Mean(data)
	sumSq := 0.0
	for _, v := range data {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(data)-1)
}

// Ranks returns 1-based ranks of the values, assigning midranks to ties.
func Ranks(data []float64) []float64 {
	n := len(data)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return data[order[a]] < data[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && data[order[j+1]] == data[order[i]] {
			j++
		}
		// Midrank for the tie group spanning positions i..j.
		mid := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = mid
		}
		i = j + 1
	}
	return ranks
}

// tieCorrection returns sum(t^3 - t) over tie groups of the sorted data.
func tieCorrection(data []float64) float64 {
	n := len(data)
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	correction := 0.0
	for i := 0; i < n; {
		j := i
		for j+1 < n && sorted[j+1] == sorted[i] {
			j++
		}
		t := float64(j - i + 1)
		correction += t*t*t - t
		i = j + 1
	}
	return correction
}
