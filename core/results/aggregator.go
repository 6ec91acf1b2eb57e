// Package results classifies reliability estimates against the
// acceptability threshold and reduces them to per-condition summaries.
package results

import (
	"github.com/adalundhe/alphasim/core/design"
	"github.com/adalundhe/alphasim/core/runner"
)

// DefaultThreshold is the standard acceptability cutoff for alpha.
const DefaultThreshold = 0.70

// Label classifies a single estimate against the threshold.
type Label string

const (
	LabelGood Label = "good"
	LabelBad  Label = "bad"
)

// ClassifiedEstimate is an estimate plus its threshold label. Failed
// replications are never classified and so never appear as one of these.
type ClassifiedEstimate struct {
	Condition   design.Condition
	Replication int
	Alpha       float64
	Label       Label
}

type bucket struct {
	good   int
	bad    int
	failed int
}

// Aggregator ingests the estimate stream from a run, classifying each
// usable estimate and counting degenerate replications per condition.
// Ingestion is order-insensitive: the same multiset of estimates yields the
// same summary regardless of arrival order. It implements runner.Sink.
//
// Buckets are keyed by the Condition value itself, not its display key, so
// conditions that format identically still aggregate separately.
type Aggregator struct {
	grid       *design.Grid
	threshold  float64
	buckets    map[design.Condition]*bucket
	classified []ClassifiedEstimate
}

// NewAggregator creates an aggregator for the grid. A non-positive
// threshold falls back to DefaultThreshold.
func NewAggregator(grid *design.Grid, threshold float64) *Aggregator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Aggregator{
		grid:      grid,
		threshold: threshold,
		buckets:   make(map[design.Condition]*bucket, grid.Len()),
	}
}

// Threshold returns the classification cutoff in use.
func (a *Aggregator) Threshold() float64 {
	return a.threshold
}

// Add ingests one estimate. Estimates at or above the threshold are labeled
// good, the rest bad; failed estimates are only counted.
func (a *Aggregator) Add(e runner.Estimate) {
	b := a.bucketFor(e.Condition)
	if e.Failed() {
		b.failed++
		return
	}

	label := LabelBad
	if e.Alpha >= a.threshold {
		label = LabelGood
		b.good++
	} else {
		b.bad++
	}
	a.classified = append(a.classified, ClassifiedEstimate{
		Condition:   e.Condition,
		Replication: e.Replication,
		Alpha:       e.Alpha,
		Label:       label,
	})
}

func (a *Aggregator) bucketFor(c design.Condition) *bucket {
	b, ok := a.buckets[c]
	if !ok {
		b = &bucket{}
		a.buckets[c] = b
	}
	return b
}

// Classified returns every classified estimate ingested so far.
func (a *Aggregator) Classified() []ClassifiedEstimate {
	return a.classified
}

// FailedCount returns how many replications of the condition produced no
// usable estimate.
func (a *Aggregator) FailedCount(c design.Condition) int {
	if b, ok := a.buckets[c]; ok {
		return b.failed
	}
	return 0
}

// TotalFailed returns the number of failed replications across the grid.
func (a *Aggregator) TotalFailed() int {
	total := 0
	for _, b := range a.buckets {
		total += b.failed
	}
	return total
}
