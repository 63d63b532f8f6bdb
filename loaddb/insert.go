package loaddb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"conveyor.dataloader.org/internal/csvdata"
)

// insertRows writes the dataset into table using a prepared statement
// inside a transaction for better performance. Cells are converted to the
// column's inferred type so every engine receives typed parameters.
func (c *Client) insertRows(ctx context.Context, table string, ds *csvdata.Dataset, types []csvdata.ColumnType) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	quoted := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		quoted[i] = c.dialect.quoteIdent(col)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		c.dialect.quoteIdent(table),
		strings.Join(quoted, ", "),
		c.dialect.placeholders(len(ds.Columns)),
	))
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	args := make([]any, len(ds.Columns))
	for _, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("row has %d cells, expected %d", len(row), len(ds.Columns))
		}
		for i, cell := range row {
			colType := csvdata.TypeText
			if i < len(types) {
				colType = types[i]
			}
			args[i] = cellValue(cell, colType)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// cellValue converts a raw cell into a typed insert parameter. Blank
// cells become NULL.
func cellValue(cell string, colType csvdata.ColumnType) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	switch colType {
	case csvdata.TypeInteger:
		if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return v
		}
	case csvdata.TypeReal:
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v
		}
	}
	return cell
}
