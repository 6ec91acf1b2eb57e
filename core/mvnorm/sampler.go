// Package mvnorm draws correlated continuous observations from a zero-mean
// multivariate normal distribution.
package mvnorm

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	simerr "github.com/adalundhe/alphasim/core/errors"
)

// Sampler draws i.i.d. rows from N(0, sigma). The Cholesky factorization of
// sigma is computed once at construction and reused for every draw, so a
// single Sampler serves all replications and sample sizes that share a
// covariance matrix.
//
// Sample is safe for concurrent use as long as each caller supplies its own
// random source.
type Sampler struct {
	dim   int
	lower []float64 // lower Cholesky factor, row-major dim x dim
}

// NewSampler factorizes sigma and returns a Sampler for it. Returns a
// DecompositionError when sigma is not positive definite.
func NewSampler(sigma *mat.SymDense) (*Sampler, error) {
	dim, _ := sigma.Dims()

	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return nil, &simerr.DecompositionError{
			Dim:    dim,
			Reason: "matrix is not positive definite",
		}
	}

	tri := mat.NewTriDense(dim, mat.Lower, nil)
	chol.LTo(tri)

	lower := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			lower[i*dim+j] = tri.At(i, j)
		}
	}

	return &Sampler{dim: dim, lower: lower}, nil
}

// Dim returns the dimensionality of the distribution.
func (s *Sampler) Dim() int {
	return s.dim
}

// Sample draws n independent rows from N(0, sigma) into a fresh n x dim
// matrix. Independent standard-normal draws are transformed through the
// lower Cholesky factor, which preserves positive definiteness numerically.
func (s *Sampler) Sample(rng *rand.Rand, n int) *mat.Dense {
	out := mat.NewDense(n, s.dim, nil)
	z := make([]float64, s.dim)
	row := make([]float64, s.dim)

	for i := 0; i < n; i++ {
		for j := range z {
			z[j] = rng.NormFloat64()
		}
		for a := 0; a < s.dim; a++ {
			var sum float64
			base := a * s.dim
			for b := 0; b <= a; b++ {
				sum += s.lower[base+b] * z[b]
			}
			row[a] = sum
		}
		out.SetRow(i, row)
	}
	return out
}
