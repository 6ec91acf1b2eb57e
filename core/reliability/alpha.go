// Package reliability computes Cronbach's alpha, the internal-consistency
// coefficient at the center of the simulation study.
package reliability

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	simerr "github.com/adalundhe/alphasim/core/errors"
)

// CronbachAlpha computes the classical unstandardized alpha for a matrix of
// item responses shaped respondents x items:
//
//	alpha = k/(k-1) * (1 - sum(itemVariances) / totalScoreVariance)
//
// using unbiased sample variances throughout. The estimate is not clamped:
// a negative alpha is a legitimate (poor) estimate, and downstream
// classification handles it. Returns an InsufficientDataError rather than a
// NaN or Inf when the input is degenerate: fewer than 2 respondents, fewer
// than 2 items, or zero total-score variance.
func CronbachAlpha(responses mat.Matrix) (float64, error) {
	n, k := responses.Dims()
	if n < 2 {
		return 0, &simerr.InsufficientDataError{
			Rows: n, Cols: k, Reason: "need at least 2 respondents",
		}
	}
	if k < 2 {
		return 0, &simerr.InsufficientDataError{
			Rows: n, Cols: k, Reason: "need at least 2 items",
		}
	}

	totals := make([]float64, n)
	col := make([]float64, n)
	var sumItemVar float64
	for j := 0; j < k; j++ {
		mat.Col(col, j, responses)
		sumItemVar += stat.Variance(col, nil)
		for i, v := range col {
			totals[i] += v
		}
	}

	totalVar := stat.Variance(totals, nil)
	if totalVar == 0 {
		return 0, &simerr.InsufficientDataError{
			Rows: n, Cols: k, Reason: "zero total-score variance",
		}
	}

	kf := float64(k)
	alpha := kf / (kf - 1) * (1 - sumItemVar/totalVar)
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return 0, &simerr.InsufficientDataError{
			Rows: n, Cols: k, Reason: "non-finite estimate",
		}
	}
	return alpha, nil
}
