package loaddb

import (
	"context"
	"fmt"
	"sort"
)

// TableInfo describes a table in the destination database.
type TableInfo struct {
	Name        string   `json:"tableName"`
	Columns     []string `json:"columns"`
	ColumnCount int      `json:"columnCount"`
	RowCount    int      `json:"rowCount"`
}

// ListTables returns the names of all user tables in the database, sorted.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	var query string
	switch c.dialect {
	case dialectPostgres:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`
	case dialectMySQL:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'`
	case dialectMSSQL:
		query = `SELECT table_name FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE = 'BASE TABLE'`
	default:
		query = `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`
	}

	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(tables)
	return tables, nil
}

// HasTable reports whether a table exists in the database.
func (c *Client) HasTable(ctx context.Context, table string) (bool, error) {
	tables, err := c.ListTables(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if t == table {
			return true, nil
		}
	}
	return false, nil
}

// TableInfo returns the column names and row count for a table, or
// ErrNoTable if the table does not exist.
func (c *Client) TableInfo(ctx context.Context, table string) (*TableInfo, error) {
	// An invalid identifier can never name an existing table.
	if err := validateIdentifier(table); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTable, table)
	}

	exists, err := c.HasTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoTable, table)
	}

	columns, err := c.tableColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	var count int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", c.dialect.quoteIdent(table))
	if err := c.DB.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, fmt.Errorf("error counting rows in %s: %w", table, err)
	}

	return &TableInfo{
		Name:        table,
		Columns:     columns,
		ColumnCount: len(columns),
		RowCount:    count,
	}, nil
}

func (c *Client) tableColumns(ctx context.Context, table string) ([]string, error) {
	if c.dialect == dialectSQLite {
		rows, err := c.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", c.dialect.quoteIdent(table)))
		if err != nil {
			return nil, fmt.Errorf("error inspecting table %s: %w", table, err)
		}
		defer rows.Close() // nolint:errcheck

		var columns []string
		for rows.Next() {
			var (
				cid        int
				name       string
				colType    string
				notNull    int
				defaultVal any
				pk         int
			)
			if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
				return nil, fmt.Errorf("error scanning column info: %w", err)
			}
			columns = append(columns, name)
		}
		return columns, rows.Err()
	}

	query := `SELECT column_name FROM information_schema.columns WHERE table_name = ` + c.dialect.placeholders(1) + ` ORDER BY ordinal_position`
	rows, err := c.DB.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("error inspecting table %s: %w", table, err)
	}
	defer rows.Close() // nolint:errcheck

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning column name: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// TableCounts returns a map of table name to row count for every user
// table in the database.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	tables, err := c.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", c.dialect.quoteIdent(table))
		if err := c.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("error counting rows in %s: %w", table, err)
		}
		counts[table] = count
	}

	return counts, nil
}
