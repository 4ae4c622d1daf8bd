package main

import (
	"os"
	"time"

	"orderline/internal/config"
	"orderline/internal/infra/db"
	infraRepo "orderline/internal/infra/repository"
	repo "orderline/internal/repository"
	"orderline/internal/usecase"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

// コマンド間で共有する部品。Before で組み立てる。
type deps struct {
	db      *gorm.DB
	lines   *usecase.OrderItemUsecase
	catalog *usecase.CatalogUsecase
	audits  repo.AuditLogRepository
}

func newDeps(cfg config.Config) (*deps, error) {
	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}

	//Repository（GORM実装）生成
	items := infraRepo.NewItemGormRepository(gormDB)
	orders := infraRepo.NewOrderGormRepository(gormDB)
	orderItems := infraRepo.NewOrderItemGormRepository(gormDB)
	tx := infraRepo.NewTxManagerGorm(gormDB)

	clock := &realClock{}

	return &deps{
		db:      gormDB,
		lines:   usecase.NewOrderItemUsecase(tx, items, orders, orderItems, clock, &uuidGenerator{}),
		catalog: usecase.NewCatalogUsecase(items, orders, clock),
		audits:  infraRepo.NewAuditLogGormRepository(gormDB),
	}, nil
}

func (d *deps) Close() {
	if d == nil || d.db == nil {
		return
	}
	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stderr)

	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("orderline failed")
	}
}

func newApp() *cli.App {
	var d *deps

	return &cli.App{
		Name:  "orderline",
		Usage: "manage order lines (ORDER_ITEM) and the items/orders they reference",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file to load before reading ORDERLINE_* variables",
			},
		},
		Before: func(c *cli.Context) error {
			// help だけならDBに繋がない
			switch c.Args().First() {
			case "", "help", "h":
				return nil
			}

			cfg, err := config.Load(c.String("env-file"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
				log.SetLevel(lvl)
			} else {
				log.WithField("level", cfg.LogLevel).Warn("unknown log level, keeping info")
			}

			d, err = newDeps(cfg)
			if err != nil {
				log.WithError(err).WithField("driver", cfg.DBDriver).Error("failed to connect db")
				return cli.Exit("db connection failed", 1)
			}
			log.WithField("driver", cfg.DBDriver).Debug("db connected")
			return nil
		},
		After: func(c *cli.Context) error {
			d.Close()
			return nil
		},
		Commands: commands(func() *deps { return d }),
	}
}
