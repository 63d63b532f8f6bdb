package loaddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	// Database drivers for every supported destination, all pure Go.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb" // no ODBC required
	_ "modernc.org/sqlite"

	"conveyor.dataloader.org/internal/appconf"
	"conveyor.dataloader.org/internal/csvdata"
)

var (
	// ErrTableExists is returned by a fail-mode load when the destination
	// table is already present.
	ErrTableExists = errors.New("destination table already exists")
	// ErrNoTable is returned when the requested table does not exist.
	ErrNoTable = errors.New("table does not exist")
)

// Client is the main entry point for the destination database layer.
type Client struct {
	config      Config
	DB          *sql.DB
	dialect     dialect
	loadRuntime time.Duration
}

// Open connects to the destination described by config and verifies the
// connection is usable.
func Open(ctx context.Context, config Config) (*Client, error) {
	driver, dsn, err := config.DSN()
	if err != nil {
		return nil, err
	}

	// The test suite must never leave database files behind.
	if config.Env == appconf.Test && driver == "sqlite" && dsn != ":memory:" {
		return nil, fmt.Errorf("test environment requires an in-memory sqlite database, got %q", dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Every pooled connection to an in-memory sqlite database would see
	// its own empty database, so pin the pool to a single connection.
	if driver == "sqlite" && dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	client := &Client{
		config:  config,
		DB:      db,
		dialect: dialectFor(driver),
	}

	if err := client.Ping(ctx); err != nil {
		db.Close() // nolint:errcheck
		return nil, fmt.Errorf("error connecting to %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		// Enable foreign keys
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			db.Close() // nolint:errcheck
			return nil, fmt.Errorf("error enabling foreign keys: %w", err)
		}
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// Ping checks the connection by executing a trivial query, the same probe
// the original connection test used.
func (c *Client) Ping(ctx context.Context) error {
	var one int
	if err := c.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// LoadRuntime reports how long the most recent LoadDataset call took.
func (c *Client) LoadRuntime() time.Duration {
	return c.loadRuntime
}

// LoadDataset writes every row of the dataset into table, honoring the
// write mode. The inserts run inside a single transaction, so a failed
// load never leaves a partially written table behind.
func (c *Client) LoadDataset(ctx context.Context, table string, ds *csvdata.Dataset, mode WriteMode) (err error) {
	startTime := time.Now()
	defer func() {
		c.loadRuntime = time.Since(startTime)
		if c.config.verbose {
			slog.Info("dataset load finished", "table", table, "duration", c.loadRuntime.String())
		}
	}()

	if err := validateIdentifier(table); err != nil {
		return err
	}
	if ds == nil || ds.Empty() {
		return csvdata.ErrNoRows
	}
	for _, col := range ds.Columns {
		if err := validateIdentifier(col); err != nil {
			return fmt.Errorf("invalid column name: %w", err)
		}
	}

	exists, err := c.HasTable(ctx, table)
	if err != nil {
		return err
	}

	switch mode {
	case ModeFail:
		if exists {
			return fmt.Errorf("%w: %s", ErrTableExists, table)
		}
	case ModeReplace:
		if exists {
			if err := c.DropTable(ctx, table); err != nil {
				return err
			}
			exists = false
		}
	case ModeAppend:
		// Nothing to do up front.
	default:
		return fmt.Errorf("unsupported write mode: %q", mode)
	}

	types := ds.InferTypes()

	if !exists {
		if err := c.CreateTable(ctx, table, ds.Columns, types); err != nil {
			return err
		}
	}

	return c.insertRows(ctx, table, ds, types)
}
