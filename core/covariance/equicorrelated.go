// Package covariance builds the population covariance structures used to
// generate correlated item data.
package covariance

import (
	"gonum.org/v1/gonum/mat"

	simerr "github.com/adalundhe/alphasim/core/errors"
)

// Equicorrelated returns the compound-symmetry correlation matrix of the
// given dimension: 1 on the diagonal and correlation everywhere off the
// diagonal. For correlation in [0,1) the result is symmetric positive
// definite, so it is always a valid sampling covariance.
//
// The builder is pure and should be invoked once per (itemCount,
// correlation) pair; the matrix is invariant across replications and
// sample sizes.
func Equicorrelated(itemCount int, correlation float64) (*mat.SymDense, error) {
	if itemCount < 2 {
		return nil, &simerr.InvalidParameterError{
			Param:  "item_count",
			Value:  itemCount,
			Reason: "need at least 2 items per scale",
		}
	}
	if correlation < 0 || correlation >= 1 {
		return nil, &simerr.InvalidParameterError{
			Param:  "correlation",
			Value:  correlation,
			Reason: "must be in [0,1)",
		}
	}

	sigma := mat.NewSymDense(itemCount, nil)
	for i := 0; i < itemCount; i++ {
		sigma.SetSym(i, i, 1.0)
		for j := i + 1; j < itemCount; j++ {
			sigma.SetSym(i, j, correlation)
		}
	}
	return sigma, nil
}
