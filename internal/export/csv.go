// Package export serializes the sales table to CSV and writes the export
// artifact to local storage.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"salesdash/internal/core"
)

// MarshalCSV renders the full table as CSV: a header row followed by one row
// per month, columns in table order, no index column. Output is deterministic,
// so repeated calls over the same table are byte-identical.
func MarshalCSV(table core.SalesTable) ([]byte, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"month"}, table.CategoryNames()...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, month := range table.Months {
		row := make([]string, 0, len(header))
		row = append(row, month)
		for _, c := range table.Categories {
			row = append(row, strconv.FormatInt(table.Values[c][i], 10))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV reads a table previously written by MarshalCSV. The first column
// must be the month label; every remaining column becomes a category.
func ParseCSV(data []byte) (core.SalesTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return core.SalesTable{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return core.SalesTable{}, fmt.Errorf("csv has no data rows")
	}

	header := records[0]
	if len(header) < 2 || header[0] != "month" {
		return core.SalesTable{}, fmt.Errorf("unexpected header %v", header)
	}

	table := core.SalesTable{Values: make(map[core.Category][]int64)}
	for _, name := range header[1:] {
		table.Categories = append(table.Categories, core.Category(name))
	}

	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return core.SalesTable{}, fmt.Errorf("row %d has %d fields, want %d", i+1, len(rec), len(header))
		}
		table.Months = append(table.Months, rec[0])
		for j, c := range table.Categories {
			v, err := strconv.ParseInt(rec[j+1], 10, 64)
			if err != nil {
				return core.SalesTable{}, fmt.Errorf("row %d column %q: %w", i+1, c, err)
			}
			table.Values[c] = append(table.Values[c], v)
		}
	}

	if err := table.Validate(); err != nil {
		return core.SalesTable{}, err
	}
	return table, nil
}
