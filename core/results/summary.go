package results

import "github.com/adalundhe/alphasim/core/design"

// SummaryRow is the per-condition deliverable: how many usable estimates
// met the threshold, how many missed it, how many replications failed, and
// the proportion meeting the threshold over the usable subset.
type SummaryRow struct {
	Condition design.Condition
	Good      int
	Bad       int
	Failed    int

	// Percentage is Good / (Good + Bad). It is only meaningful when
	// Defined is true; a condition whose replications all failed has no
	// ratio to report.
	Percentage float64
	Defined    bool
}

// Summarize reduces the ingested estimates to one SummaryRow per grid
// condition, in grid enumeration order.
func (a *Aggregator) Summarize() []SummaryRow {
	rows := make([]SummaryRow, 0, a.grid.Len())
	for _, cond := range a.grid.All() {
		row := SummaryRow{Condition: cond}
		if b, ok := a.buckets[cond]; ok {
			row.Good = b.good
			row.Bad = b.bad
			row.Failed = b.failed
		}
		if classified := row.Good + row.Bad; classified > 0 {
			row.Percentage = float64(row.Good) / float64(classified)
			row.Defined = true
		}
		rows = append(rows, row)
	}
	return rows
}
