package usecase

import (
	"context"
	"strings"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"
)

// 明細が参照する商品と注文を用意する。
type CatalogUsecase struct {
	items  repo.ItemRepository
	orders repo.OrderRepository
	clock  Clock
}

func NewCatalogUsecase(items repo.ItemRepository, orders repo.OrderRepository, clock Clock) *CatalogUsecase {
	return &CatalogUsecase{items: items, orders: orders, clock: clock}
}

type RegisterItemInput struct {
	Name          string
	Price         int64
	StockQuantity int64
}

func (u *CatalogUsecase) RegisterItem(ctx context.Context, in RegisterItemInput) (model.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Item{}, NewError(CodeInvalidArgument, "invalid name")
	}
	if in.Price < 0 {
		return model.Item{}, NewError(CodeInvalidArgument, "invalid price")
	}
	if in.StockQuantity < 0 {
		return model.Item{}, NewError(CodeInvalidArgument, "invalid stock_quantity")
	}

	it, err := u.items.Create(ctx, model.Item{Name: name, Price: in.Price, StockQuantity: in.StockQuantity})
	if err != nil {
		return model.Item{}, fromRepo(err, "item")
	}
	return it, nil
}

func (u *CatalogUsecase) OpenOrder(ctx context.Context, memberID int64) (model.Order, error) {
	if memberID <= 0 {
		return model.Order{}, NewError(CodeInvalidArgument, "invalid member_id")
	}

	o, err := u.orders.Create(ctx, model.Order{
		MemberID:  memberID,
		OrderDate: u.clock.Now(),
		Status:    model.OrderStatusOrder,
	})
	if err != nil {
		return model.Order{}, fromRepo(err, "order")
	}
	return o, nil
}
