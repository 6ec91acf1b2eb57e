// Package report renders per-condition summaries for downstream
// collaborators: a fixed-width table for terminals and CSV for anything
// that wants to plot or persist the results.
package report

import (
	"fmt"
	"io"

	"github.com/adalundhe/alphasim/core/results"
)

// WriteTable renders the summary rows as an aligned text table. Conditions
// whose percentage is undefined print NA instead of a number.
func WriteTable(w io.Writer, rows []results.SummaryRow) error {
	if _, err := fmt.Fprintf(w, "%-6s %-6s %-6s %8s %8s %8s %10s\n",
		"items", "corr", "n", "good", "bad", "failed", "pct_good"); err != nil {
		return err
	}

	for _, row := range rows {
		pct := "NA"
		if row.Defined {
			pct = fmt.Sprintf("%.4f", row.Percentage)
		}
		if _, err := fmt.Fprintf(w, "%-6d %-6.2f %-6d %8d %8d %8d %10s\n",
			row.Condition.ItemCount,
			row.Condition.Correlation,
			row.Condition.SampleSize,
			row.Good,
			row.Bad,
			row.Failed,
			pct,
		); err != nil {
			return err
		}
	}
	return nil
}
