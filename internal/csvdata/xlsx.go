package csvdata

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads a dataset from the first sheet of an Excel workbook.
// The first row is the header; short rows are padded so every row has
// exactly one cell per column, and rows wider than the header are an
// error.
func ReadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close() // nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}

	rows := make([][]string, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) > len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i+2, len(record), len(columns))
		}
		row := make([]string, len(columns))
		copy(row, record)
		rows = append(rows, row)
	}

	return &Dataset{
		Columns: columns,
		Rows:    rows,
	}, nil
}
