// Package discretize maps continuous observations to ordinal Likert-type
// categories using fixed cut points.
package discretize

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	simerr "github.com/adalundhe/alphasim/core/errors"
)

// DefaultCutPoints are the reference interval boundaries. With the implicit
// outer boundaries at -inf and +inf they induce the five categories
// (-inf,-2) [-2,-1) [-1,1) [1,2) [2,+inf).
var DefaultCutPoints = []float64{-2, -1, 1, 2}

// Scheme is a fixed set of ascending cut points. Intervals are left-closed
// and right-open except the final one, which extends to +inf, so a value
// equal to a boundary belongs to the interval starting at that boundary.
type Scheme struct {
	cuts []float64
}

// NewScheme validates the cut points (non-empty, strictly ascending) and
// returns a Scheme producing categories 1..len(cuts)+1.
func NewScheme(cutPoints []float64) (*Scheme, error) {
	if len(cutPoints) == 0 {
		return nil, &simerr.InvalidParameterError{
			Param:  "cut_points",
			Value:  cutPoints,
			Reason: "need at least one boundary",
		}
	}
	for i := 1; i < len(cutPoints); i++ {
		if cutPoints[i] <= cutPoints[i-1] {
			return nil, &simerr.InvalidParameterError{
				Param:  "cut_points",
				Value:  cutPoints,
				Reason: "boundaries must be strictly ascending",
			}
		}
	}
	return &Scheme{cuts: slices.Clone(cutPoints)}, nil
}

// DefaultScheme returns the reference five-category scheme.
func DefaultScheme() *Scheme {
	s, err := NewScheme(DefaultCutPoints)
	if err != nil {
		panic(err)
	}
	return s
}

// Categories returns the number of categories the scheme produces.
func (s *Scheme) Categories() int {
	return len(s.cuts) + 1
}

// Value maps a single continuous value to its 1-indexed category. The
// mapping is deterministic and monotone in x.
func (s *Scheme) Value(x float64) int {
	cat := 1
	for _, cut := range s.cuts {
		if x < cut {
			break
		}
		cat++
	}
	return cat
}

// InPlace overwrites every element of m with its category, keeping the
// matrix shape. Writing categories back into the sample matrix avoids a
// second allocation per replication.
func (s *Scheme) InPlace(m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, float64(s.Value(m.At(i, j))))
		}
	}
}

// Matrix returns a new matrix holding the categories of m, leaving m
// untouched.
func (s *Scheme) Matrix(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(m)
	s.InPlace(out)
	return out
}
