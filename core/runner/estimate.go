package runner

import "github.com/adalundhe/alphasim/core/design"

// Estimate is the scalar outcome of one (condition, replication) pair. The
// generated sample matrices are never retained; only this record flows out
// of a replication.
type Estimate struct {
	Condition   design.Condition
	Replication int // 1-based replication id within the condition

	// Alpha is the reliability estimate. Only meaningful when Err is nil.
	Alpha float64

	// Err records a degenerate replication (insufficient data). A non-nil
	// Err means "no valid estimate" and excludes the record from
	// classification.
	Err error
}

// Failed reports whether the replication produced no usable estimate.
func (e Estimate) Failed() bool {
	return e.Err != nil
}

// Sink receives estimates from a run. Add is always invoked from a single
// goroutine; implementations need no locking of their own.
type Sink interface {
	Add(Estimate)
}
