package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrEmptyFile is returned when the source file has no header row.
	ErrEmptyFile = errors.New("source file is empty")
	// ErrNoRows is returned when the source file has a header but no data rows.
	ErrNoRows = errors.New("source file has no data rows")
)

// ColumnType is the inferred storage type for a column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeReal
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Dataset is an in-memory table: an ordered header plus rows of cells.
// Rows always have exactly len(Columns) cells.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows in the dataset.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// Empty reports whether the dataset has no data rows.
func (d *Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// ReadFile loads a dataset from a local file, dispatching on the extension.
// CSV is the primary format; .xlsx workbooks are read from their first sheet.
func ReadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return ReadCSV(path)
	}
}

// ReadCSV loads a dataset from a CSV file. The first record is the header.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening source file: %w", err)
	}
	defer f.Close() // nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}

	return &Dataset{
		Columns: columns,
		Rows:    records[1:],
	}, nil
}

// InferTypes scans every cell and returns one ColumnType per column.
// A column is INTEGER only if every non-blank cell parses as an integer,
// REAL if every non-blank cell parses as a number, and TEXT otherwise.
// Blank cells never demote a column.
func (d *Dataset) InferTypes() []ColumnType {
	types := make([]ColumnType, len(d.Columns))
	seen := make([]bool, len(d.Columns))

	for i := range types {
		types[i] = TypeInteger
	}

	for _, row := range d.Rows {
		for i, cell := range row {
			if i >= len(types) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			seen[i] = true
			switch types[i] {
			case TypeInteger:
				if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
					continue
				}
				if _, err := strconv.ParseFloat(cell, 64); err == nil {
					types[i] = TypeReal
					continue
				}
				types[i] = TypeText
			case TypeReal:
				if _, err := strconv.ParseFloat(cell, 64); err != nil {
					types[i] = TypeText
				}
			}
		}
	}

	// A column with no values at all stays TEXT rather than INTEGER.
	for i := range types {
		if !seen[i] {
			types[i] = TypeText
		}
	}

	return types
}
