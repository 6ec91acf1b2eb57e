// Package design defines the simulation design grid: the cross product of
// item counts, inter-item correlations, and sample sizes that parameterizes
// every downstream computation.
package design

import "fmt"

// Condition identifies one cell of the simulation grid. It is a value type
// and is never mutated after construction.
type Condition struct {
	// ItemCount is the number of items on the simulated scale.
	ItemCount int

	// Correlation is the population inter-item correlation.
	Correlation float64

	// SampleSize is the number of simulated respondents per replication.
	SampleSize int
}

// Key returns a display label for the condition, used in log and report
// output. It rounds the correlation for readability, so it is not unique
// across arbitrary grids; identity uses key on the Condition value itself.
func (c Condition) Key() string {
	return fmt.Sprintf("k%02d_r%.2f_n%04d", c.ItemCount, c.Correlation, c.SampleSize)
}

func (c Condition) String() string {
	return fmt.Sprintf("items=%d corr=%.2f n=%d", c.ItemCount, c.Correlation, c.SampleSize)
}
