package loaddb

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"

	"conveyor.dataloader.org/internal/appconf"
)

// WriteMode controls what happens when the destination table already exists.
type WriteMode string

const (
	// ModeFail aborts the load if the table already exists.
	ModeFail WriteMode = "fail"
	// ModeReplace drops and recreates the table before loading.
	ModeReplace WriteMode = "replace"
	// ModeAppend creates the table if missing and appends rows.
	ModeAppend WriteMode = "append"
)

// ParseWriteMode converts a request string into a WriteMode. An empty string
// defaults to replace, matching the original loader behavior.
func ParseWriteMode(s string) (WriteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeReplace, nil
	case "fail":
		return ModeFail, nil
	case "replace":
		return ModeReplace, nil
	case "append":
		return ModeAppend, nil
	}
	return "", fmt.Errorf("unsupported write mode: %q", s)
}

// Connection holds network credentials for server-based databases.
type Connection struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
}

// Config holds configuration options for the Client
type Config struct {
	// Destination configuration
	DBType     string     `json:"type" yaml:"type"`         // sqlite, postgres, mysql or mssql
	DBName     string     `json:"database" yaml:"database"` // database name, or SQLite file path
	Connection Connection `json:"connection" yaml:"connection"`
	Table      string     `json:"table" yaml:"table"` // default destination table
	Mode       string     `json:"mode" yaml:"mode"`   // fail, replace or append

	Env     appconf.Environment `json:"-" yaml:"-"`
	verbose bool
}

func NewConfig(dbType, dbName string, conn Connection, verbose bool) Config {
	config := Config{
		DBType:     dbType,
		DBName:     dbName,
		Connection: conn,
		verbose:    verbose,
	}

	return config
}

// defaultPorts per database type, used when the request omits a port.
var defaultPorts = map[string]int{
	"postgres":   5432,
	"postgresql": 5432,
	"mysql":      3306,
	"mssql":      1433,
	"sqlserver":  1433,
}

// DSN builds the driver name and data source name for the configured
// destination. Credentials are URL-encoded so passwords containing
// reserved characters (e.g. '@') survive the round trip. SQL Server uses
// the pure Go driver URL, so no ODBC setup is required on any platform.
func (c Config) DSN() (driver string, dsn string, err error) {
	conn := c.Connection

	host := conn.Host
	if host == "" {
		host = "localhost"
	}
	port := conn.Port
	if port == 0 {
		port = defaultPorts[strings.ToLower(c.DBType)]
	}
	database := conn.Database
	if database == "" {
		database = c.DBName
	}

	switch strings.ToLower(c.DBType) {
	case "sqlite":
		path := database
		if path == "" {
			path = ":memory:"
		}
		return "sqlite", path, nil

	case "postgres", "postgresql":
		u := &url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(host, fmt.Sprint(port)),
			Path:   "/" + database,
		}
		u.User = userInfo(conn.User, conn.Password)
		q := url.Values{}
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		return "postgres", u.String(), nil

	case "mysql":
		mc := mysqldriver.NewConfig()
		mc.User = conn.User
		mc.Passwd = conn.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(host, fmt.Sprint(port))
		mc.DBName = database
		mc.ParseTime = true
		return "mysql", mc.FormatDSN(), nil

	case "mssql", "sqlserver":
		u := &url.URL{
			Scheme: "sqlserver",
			Host:   net.JoinHostPort(host, fmt.Sprint(port)),
		}
		u.User = userInfo(conn.User, conn.Password)
		q := url.Values{}
		q.Set("database", database)
		u.RawQuery = q.Encode()
		return "sqlserver", u.String(), nil
	}

	return "", "", fmt.Errorf("unsupported database type: %q", c.DBType)
}

func userInfo(user, password string) *url.Userinfo {
	if user == "" {
		return nil
	}
	if password == "" {
		return url.User(user)
	}
	return url.UserPassword(user, password)
}

// Redacted returns the DSN with any password replaced, safe for logging.
func (c Config) Redacted() string {
	if c.Connection.Password != "" {
		c.Connection.Password = "xxxxx"
	}
	_, dsn, err := c.DSN()
	if err != nil {
		return ""
	}
	return dsn
}
