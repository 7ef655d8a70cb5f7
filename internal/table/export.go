package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes rows as CSV: one header record with the column headers as displayed,
// then one record per row with the displayed cell values. Fields containing commas,
// quotes or line breaks are quoted.
func (t *Table[T]) WriteCSV(w io.Writer, rows []T) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		header = append(header, c.Header)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(t.columns))
	for _, row := range rows {
		for i, c := range t.columns {
			record[i] = c.Value(row)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Export writes every row matching the state's search, in the state's sort order
func (t *Table[T]) Export(w io.Writer, rows []T, s State) error {
	return t.WriteCSV(w, t.Rows(rows, s))
}
