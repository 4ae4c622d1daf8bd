package db

import (
	"fmt"
	"strings"
	"time"

	"orderline/internal/config"

	"github.com/avast/retry-go"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector は設定から gorm のダイアレクタを選ぶ。
func Dialector(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		// DATABASE_URL があれば最優先で使う
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = cfg.PostgresDSN()
		}
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DatabaseURL), nil
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.DatabaseURL)), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// Connect はDBに接続して *gorm.DB を返す。起動直後でDBが未準備なこともあるのでリトライする。
func Connect(cfg config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if cfg.SQLLog {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var gormDB *gorm.DB
	err = retry.Do(
		func() error {
			d, err := gorm.Open(dialector, gcfg)
			if err != nil {
				return err
			}
			sqlDB, err := d.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.Ping(); err != nil {
				return err
			}
			gormDB = d
			return nil
		},
		retry.Attempts(cfg.ConnectAttempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).WithFields(log.Fields{
				"driver":  cfg.DBDriver,
				"attempt": n + 1,
			}).Warn("db connect failed, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return gormDB, nil
}

// sqlite はFKを明示的に有効化しないと制約が効かない。接続ごとの設定なのでDSNに付ける。
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
