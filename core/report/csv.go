package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/adalundhe/alphasim/core/results"
)

// WriteCSV writes the summary rows as CSV with a header row: condition
// axes, counts, and the proportion meeting the threshold (empty when
// undefined).
func WriteCSV(w io.Writer, rows []results.SummaryRow) error {
	cw := csv.NewWriter(w)

	header := []string{"item_count", "correlation", "sample_size", "good", "bad", "failed", "pct_good"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		pct := ""
		if row.Defined {
			pct = strconv.FormatFloat(row.Percentage, 'f', 6, 64)
		}
		record := []string{
			strconv.Itoa(row.Condition.ItemCount),
			strconv.FormatFloat(row.Condition.Correlation, 'f', 2, 64),
			strconv.Itoa(row.Condition.SampleSize),
			strconv.Itoa(row.Good),
			strconv.Itoa(row.Bad),
			strconv.Itoa(row.Failed),
			pct,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
