package repository

import (
	"context"
	"testing"
	"time"

	"orderline/internal/domain/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB は sqlite のインメモリDBを作る。
// :memory: は接続ごとに別DBになるので接続は1本に絞る。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, AutoMigrate(gormDB))
	return gormDB
}

func seedItem(t *testing.T, db *gorm.DB, name string, price int64) model.Item {
	t.Helper()
	it, err := NewItemGormRepository(db).Create(context.Background(), model.Item{Name: name, Price: price, StockQuantity: 10})
	require.NoError(t, err)
	return it
}

func seedOrder(t *testing.T, db *gorm.DB) model.Order {
	t.Helper()
	o, err := NewOrderGormRepository(db).Create(context.Background(), model.Order{
		MemberID:  1,
		OrderDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func newLine(t *testing.T, itemID, orderID, price, qty int64) *model.OrderItem {
	t.Helper()
	oi, err := model.NewOrderItem(model.NewRef[model.Item](itemID), model.NewRef[model.Order](orderID), price, qty)
	require.NoError(t, err)
	return oi
}
