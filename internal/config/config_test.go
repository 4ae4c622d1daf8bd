package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("ORDERLINE_DB_DRIVER", "SQLite")
	t.Setenv("ORDERLINE_DATABASE_URL", "file::memory:")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, uint(5), cfg.ConnectAttempts)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	t.Setenv("ORDERLINE_DB_DRIVER", "postgres")
	t.Setenv("ORDERLINE_DATABASE_URL", "")
	t.Setenv("ORDERLINE_POSTGRES_PASSWORD", "")

	_, err := Load("")
	assert.ErrorContains(t, err, "POSTGRES_PASSWORD is required")
}

func TestLoad_MySQLRequiresURL(t *testing.T) {
	t.Setenv("ORDERLINE_DB_DRIVER", "mysql")
	t.Setenv("ORDERLINE_DATABASE_URL", "")

	_, err := Load("")
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("ORDERLINE_DB_DRIVER", "oracle")

	_, err := Load("")
	assert.ErrorContains(t, err, "must be one of")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ORDERLINE_DB_DRIVER=postgres\nORDERLINE_POSTGRES_PASSWORD=secret\nORDERLINE_POSTGRES_PORT=5433\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ORDERLINE_DB_DRIVER")
		os.Unsetenv("ORDERLINE_POSTGRES_PASSWORD")
		os.Unsetenv("ORDERLINE_POSTGRES_PORT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5433, cfg.PostgresPort)
	assert.Contains(t, cfg.PostgresDSN(), "port=5433")
	assert.Contains(t, cfg.PostgresDSN(), "password=secret")
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("ORDERLINE_DB_DRIVER", "sqlite")
	t.Setenv("ORDERLINE_DATABASE_URL", "file::memory:")

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
