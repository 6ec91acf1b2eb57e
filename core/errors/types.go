// Package errors defines the error taxonomy for the simulation pipeline
// with classification helpers used by the runner and the CLI.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline error. Each kind has defined handling behavior:
// invalid parameters and failed decompositions abort the run, while
// insufficient-data errors mark a single replication as failed and let the
// run continue.
type Kind int

const (
	// KindUnknown is returned for errors that do not originate in this package.
	KindUnknown Kind = iota

	// KindInvalidParameter indicates a malformed simulation input.
	// Fatal: it points at a configuration bug, so no sampling should start.
	KindInvalidParameter

	// KindDecomposition indicates a covariance matrix that could not be
	// factorized. Fatal for the condition that produced it.
	KindDecomposition

	// KindInsufficientData indicates a degenerate replication, for example
	// zero total-score variance. Recoverable: the replication is recorded
	// as failed and excluded from classification.
	KindInsufficientData
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindInvalidParameter: "invalid_parameter",
	KindDecomposition:    "decomposition",
	KindInsufficientData: "insufficient_data",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Recoverable reports whether an error of this kind may be recorded against
// a single replication instead of aborting the run.
func (k Kind) Recoverable() bool {
	return k == KindInsufficientData
}

// InvalidParameterError reports a simulation input outside its allowed range.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// DecompositionError reports a covariance matrix that is not positive
// definite and therefore has no Cholesky factorization.
type DecompositionError struct {
	Dim    int
	Reason string
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("covariance decomposition failed for %dx%d matrix: %s", e.Dim, e.Dim, e.Reason)
}

// InsufficientDataError reports a response matrix too degenerate to yield a
// reliability estimate.
type InsufficientDataError struct {
	Rows   int
	Cols   int
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data (%d rows, %d items): %s", e.Rows, e.Cols, e.Reason)
}

// Classify returns the Kind of err, unwrapping as needed.
func Classify(err error) Kind {
	var ipe *InvalidParameterError
	if errors.As(err, &ipe) {
		return KindInvalidParameter
	}
	var de *DecompositionError
	if errors.As(err, &de) {
		return KindDecomposition
	}
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		return KindInsufficientData
	}
	return KindUnknown
}

// IsInvalidParameter reports whether err wraps an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	return Classify(err) == KindInvalidParameter
}

// IsDecomposition reports whether err wraps a DecompositionError.
func IsDecomposition(err error) bool {
	return Classify(err) == KindDecomposition
}

// IsInsufficientData reports whether err wraps an InsufficientDataError.
func IsInsufficientData(err error) bool {
	return Classify(err) == KindInsufficientData
}
