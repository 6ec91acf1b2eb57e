package design

import (
	"iter"
	"slices"

	simerr "github.com/adalundhe/alphasim/core/errors"
)

// Reference study axes. DefaultGrid reproduces this grid exactly.
var (
	DefaultItemCounts   = []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	DefaultCorrelations = []float64{0.10, 0.15, 0.20, 0.25}
	DefaultSampleSizes  = []int{50, 100, 250, 500, 1000}
)

// Grid enumerates the cross product of the three condition axes in a fixed
// deterministic order: item count ascending (outer), correlation ascending,
// sample size ascending (inner). The order only pins down output labeling;
// results do not depend on execution order.
type Grid struct {
	itemCounts   []int
	correlations []float64
	sampleSizes  []int
}

// NewGrid validates the axes and returns a Grid. Axes are copied, sorted
// ascending, and deduplicated so enumeration order is always well defined
// and no condition appears twice.
func NewGrid(itemCounts []int, correlations []float64, sampleSizes []int) (*Grid, error) {
	if len(itemCounts) == 0 {
		return nil, &simerr.InvalidParameterError{Param: "item_counts", Value: itemCounts, Reason: "axis must not be empty"}
	}
	if len(correlations) == 0 {
		return nil, &simerr.InvalidParameterError{Param: "correlations", Value: correlations, Reason: "axis must not be empty"}
	}
	if len(sampleSizes) == 0 {
		return nil, &simerr.InvalidParameterError{Param: "sample_sizes", Value: sampleSizes, Reason: "axis must not be empty"}
	}
	for _, k := range itemCounts {
		if k < 2 {
			return nil, &simerr.InvalidParameterError{Param: "item_counts", Value: k, Reason: "need at least 2 items per scale"}
		}
	}
	for _, r := range correlations {
		if r < 0 || r >= 1 {
			return nil, &simerr.InvalidParameterError{Param: "correlations", Value: r, Reason: "must be in [0,1)"}
		}
	}
	for _, n := range sampleSizes {
		if n < 2 {
			return nil, &simerr.InvalidParameterError{Param: "sample_sizes", Value: n, Reason: "need at least 2 respondents"}
		}
	}

	g := &Grid{
		itemCounts:   slices.Clone(itemCounts),
		correlations: slices.Clone(correlations),
		sampleSizes:  slices.Clone(sampleSizes),
	}
	slices.Sort(g.itemCounts)
	slices.Sort(g.correlations)
	slices.Sort(g.sampleSizes)
	g.itemCounts = slices.Compact(g.itemCounts)
	g.correlations = slices.Compact(g.correlations)
	g.sampleSizes = slices.Compact(g.sampleSizes)
	return g, nil
}

// DefaultGrid returns the reference 200-condition grid.
func DefaultGrid() *Grid {
	g, err := NewGrid(DefaultItemCounts, DefaultCorrelations, DefaultSampleSizes)
	if err != nil {
		// The reference axes are constants; this cannot happen.
		panic(err)
	}
	return g
}

// Len returns the number of conditions in the grid.
func (g *Grid) Len() int {
	return len(g.itemCounts) * len(g.correlations) * len(g.sampleSizes)
}

// ConditionAt returns the condition at position idx in enumeration order.
// idx must be in [0, Len()).
func (g *Grid) ConditionAt(idx int) Condition {
	nr := len(g.correlations)
	nn := len(g.sampleSizes)
	return Condition{
		ItemCount:   g.itemCounts[idx/(nr*nn)],
		Correlation: g.correlations[(idx/nn)%nr],
		SampleSize:  g.sampleSizes[idx%nn],
	}
}

// All returns a restartable iterator over (index, condition) pairs in
// enumeration order. Conditions are produced lazily.
func (g *Grid) All() iter.Seq2[int, Condition] {
	return func(yield func(int, Condition) bool) {
		idx := 0
		for _, k := range g.itemCounts {
			for _, r := range g.correlations {
				for _, n := range g.sampleSizes {
					if !yield(idx, Condition{ItemCount: k, Correlation: r, SampleSize: n}) {
						return
					}
					idx++
				}
			}
		}
	}
}

// Conditions materializes the full enumeration as a slice.
func (g *Grid) Conditions() []Condition {
	out := make([]Condition, 0, g.Len())
	for _, c := range g.All() {
		out = append(out, c)
	}
	return out
}
