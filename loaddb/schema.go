package loaddb

import (
	"context"
	"fmt"
	"strings"

	"conveyor.dataloader.org/internal/csvdata"
)

// CreateTable creates a table with one column per dataset column, typed
// from the inferred column types. Identifiers must already be validated.
func (c *Client) CreateTable(ctx context.Context, table string, columns []string, types []csvdata.ColumnType) error {
	if len(columns) == 0 {
		return fmt.Errorf("cannot create table %s with no columns", table)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		colType := csvdata.TypeText
		if i < len(types) {
			colType = types[i]
		}
		defs[i] = fmt.Sprintf("%s %s", c.dialect.quoteIdent(col), c.dialect.columnType(colType))
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", c.dialect.quoteIdent(table), strings.Join(defs, ", "))
	if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("error creating table %s: %w", table, err)
	}
	return nil
}

// DropTable removes a table if it exists.
func (c *Client) DropTable(ctx context.Context, table string) error {
	if err := validateIdentifier(table); err != nil {
		return err
	}
	stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", c.dialect.quoteIdent(table))
	if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("error dropping table %s: %w", table, err)
	}
	return nil
}
