package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// normalSF returns the upper-tail probability P(Z > z) of the standard
// normal distribution.
func normalSF(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}

// chiSquaredSF returns the upper-tail probability P(X > x) for a
// chi-squared distribution with df degrees of freedom.
func chiSquaredSF(x, df float64) float64 {
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: df}.Survival(x)
}

// fDistSF returns the upper-tail probability P(F > f) for an F
// distribution with df1 and df2 degrees of freedom.
func fDistSF(f, df1, df2 float64) float64 {
	if f <= 0 {
		return 1
	}
	return distuv.F{D1: df1, D2: df2}.Survival(f)
}

// tDistSF2 returns the two-sided p-value for a t statistic with df
// degrees of freedom.
func tDistSF2(t, df float64) float64 {
	if df <= 0 {
		return math.NaN()
	}
	return 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Survival(math.Abs(t))
}
