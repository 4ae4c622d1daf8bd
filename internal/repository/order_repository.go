package repository

import (
	"context"

	"orderline/internal/domain/model"
)

// 注文の保存・取得。model.Loader[model.Order] を満たす。
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Delete(ctx context.Context, orderID int64) error
}
