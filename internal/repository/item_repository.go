package repository

import (
	"context"

	"orderline/internal/domain/model"
)

// 商品の保存・取得。model.Loader[model.Item] を満たす。
type ItemRepository interface {
	Create(ctx context.Context, item model.Item) (model.Item, error)
	FindByID(ctx context.Context, id int64) (model.Item, error)
}
