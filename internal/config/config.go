package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "ORDERLINE"

// DBドライバ
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Configはアプリ全体の設定（環境変数 ORDERLINE_*）
type Config struct {
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"` // あれば最優先（mysql / sqlite はこれが必須）

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"orderline"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	ConnectAttempts uint   `envconfig:"DB_CONNECT_ATTEMPTS" default:"5"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	SQLLog          bool   `envconfig:"SQL_LOG" default:"false"`
}

// Loadは envFile（空なら読まない）を読み込んでから環境変数を解釈する。
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	//必須チェック
	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" && cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("%s_POSTGRES_PASSWORD is required", envPrefix)
		}
	case DriverMySQL, DriverSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("%s_DATABASE_URL is required for %s", envPrefix, cfg.DBDriver)
		}
	default:
		return Config{}, fmt.Errorf("%s_DB_DRIVER must be one of postgres, mysql, sqlite: got %q", envPrefix, cfg.DBDriver)
	}
	if cfg.ConnectAttempts == 0 {
		return Config{}, fmt.Errorf("%s_DB_CONNECT_ATTEMPTS must be >= 1", envPrefix)
	}

	return cfg, nil
}

// PostgresDSN は DATABASE_URL が無いときの接続文字列。
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}
