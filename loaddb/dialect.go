package loaddb

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"conveyor.dataloader.org/internal/csvdata"
)

// dialect captures the SQL spelling differences between the supported
// engines: placeholder style, identifier quoting and column type names.
type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
	dialectMySQL
	dialectMSSQL
)

func dialectFor(driver string) dialect {
	switch driver {
	case "postgres":
		return dialectPostgres
	case "mysql":
		return dialectMySQL
	case "sqlserver":
		return dialectMSSQL
	default:
		return dialectSQLite
	}
}

// placeholders returns the parameter list for one inserted row, e.g.
// "?, ?, ?" for sqlite and "$1, $2, $3" for postgres.
func (d dialect) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		switch d {
		case dialectPostgres:
			parts[i] = fmt.Sprintf("$%d", i+1)
		case dialectMSSQL:
			parts[i] = fmt.Sprintf("@p%d", i+1)
		default:
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// quoteIdent quotes a table or column name for the engine.
func (d dialect) quoteIdent(name string) string {
	switch d {
	case dialectMySQL:
		return "`" + name + "`"
	case dialectMSSQL:
		return "[" + name + "]"
	default:
		return `"` + name + `"`
	}
}

// columnType maps an inferred dataset type onto the engine's spelling.
func (d dialect) columnType(t csvdata.ColumnType) string {
	switch t {
	case csvdata.TypeInteger:
		if d == dialectSQLite {
			return "INTEGER"
		}
		return "BIGINT"
	case csvdata.TypeReal:
		switch d {
		case dialectSQLite:
			return "REAL"
		case dialectMySQL:
			return "DOUBLE"
		case dialectMSSQL:
			return "FLOAT"
		default:
			return "DOUBLE PRECISION"
		}
	default:
		if d == dialectMSSQL {
			return "NVARCHAR(MAX)"
		}
		return "TEXT"
	}
}

// Allow alphanumeric, underscore, hyphen, dot - common in table and column names
var validIdentPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_ .-]*$`)

func validateIdentifier(name string) error {
	if name == "" {
		return errors.New("identifier cannot be empty")
	}
	if len(name) > 128 {
		return errors.New("identifier too long (max 128 characters)")
	}
	if !validIdentPattern.MatchString(name) {
		return fmt.Errorf("identifier contains invalid characters: %q", name)
	}
	return nil
}
