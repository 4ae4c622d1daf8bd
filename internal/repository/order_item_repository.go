package repository

import (
	"context"

	"orderline/internal/domain/model"
)

type OrderItemRepository interface {
	// Save は ID が無ければ INSERT して ID を一度だけ割り当てる。
	// ID があれば orderPrice / count だけ UPDATE する。
	Save(ctx context.Context, item *model.OrderItem) error
	FindByID(ctx context.Context, id int64) (*model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]*model.OrderItem, error)
	// 注文削除に伴うカスケード
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
	CountByItemID(ctx context.Context, itemID int64) (int64, error)
}
