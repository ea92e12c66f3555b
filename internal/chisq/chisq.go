package chisq

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minExpected drops pairs of values too rare to compare.
const minExpected = 4

// Result of the pairs-of-values test.
type Result struct {
	// Statistic is the chi-square value over the compared pairs.
	Statistic float64
	// DegreesOfFreedom is the number of compared pairs minus one.
	DegreesOfFreedom int
	// Probability that the LSB plane has been overwritten with
	// uniformly distributed bits. Zero when there is nothing to compare.
	Probability float64
}

// Attack runs the Westfeld–Pfitzmann chi-square attack on a histogram of
// channel values. LSB replacement pushes the counts of each pair (2k, 2k+1)
// towards their mean, so a small statistic means embedding is likely.
func Attack(hist *[256]int) Result {
	var obs, exp []float64
	for k := range 128 {
		even, odd := hist[2*k], hist[2*k+1]
		mean := float64(even+odd) / 2
		if mean <= minExpected {
			continue
		}
		obs = append(obs, float64(even))
		exp = append(exp, mean)
	}
	if len(obs) < 2 {
		return Result{}
	}
	x := stat.ChiSquare(obs, exp)
	dof := len(obs) - 1
	cdf := distuv.ChiSquared{K: float64(dof)}.CDF(x)
	return Result{
		Statistic:        x,
		DegreesOfFreedom: dof,
		Probability:      1 - cdf,
	}
}
