package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: 8080
env: production
apiKeys:
  - alpha
  - beta
rateLimit: 50
logFile: /var/log/conveyor.log
destination:
  type: postgres
  database: warehouse
  connection:
    host: db.internal
    port: 5432
    user: loader
    password: secret
  table: imports
  mode: append
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.ApiKeys)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, "/var/log/conveyor.log", cfg.LogFile)
	assert.Equal(t, "postgres", cfg.Destination.DBType)
	assert.Equal(t, "warehouse", cfg.Destination.DBName)
	assert.Equal(t, "db.internal", cfg.Destination.Connection.Host)
	assert.Equal(t, 5432, cfg.Destination.Connection.Port)
	assert.Equal(t, "loader", cfg.Destination.Connection.User)
	assert.Equal(t, "secret", cfg.Destination.Connection.Password)
	assert.Equal(t, "imports", cfg.Destination.Table)
	assert.Equal(t, "append", cfg.Destination.Mode)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))

	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}
