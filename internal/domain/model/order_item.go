package model

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidArgument は入力が制約を満たさないときに返す（唯一のドメインエラー）。
var ErrInvalidArgument = errors.New("invalid argument")

// OrderItem は注文明細。
// 注文時点の単価（スナップショット）と数量を持ち、Item と Order を参照するだけ。
// フィールドは非公開にして、変更は AdjustQuantity / CorrectUnitPrice からだけ行う。
type OrderItem struct {
	id        int64
	item      Ref[Item]
	order     Ref[Order]
	unitPrice int64
	quantity  int64
}

// NewOrderItem は未保存（ID なし）の明細を作る。
func NewOrderItem(item Ref[Item], order Ref[Order], unitPrice int64, quantity int64) (*OrderItem, error) {
	if item.IsNull() {
		return nil, fmt.Errorf("item is required (key=%d): %w", item.Key(), ErrInvalidArgument)
	}
	if order.IsNull() {
		return nil, fmt.Errorf("order is required (key=%d): %w", order.Key(), ErrInvalidArgument)
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("unit price must be >= 0, got %d: %w", unitPrice, ErrInvalidArgument)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be >= 1, got %d: %w", quantity, ErrInvalidArgument)
	}
	return &OrderItem{
		item:      item,
		order:     order,
		unitPrice: unitPrice,
		quantity:  quantity,
	}, nil
}

// RestoreOrderItem は保存済みの行から明細を復元する（mapper 用）。
func RestoreOrderItem(id int64, item Ref[Item], order Ref[Order], unitPrice int64, quantity int64) (*OrderItem, error) {
	oi, err := NewOrderItem(item, order, unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	if err := oi.AssignID(id); err != nil {
		return nil, err
	}
	return oi, nil
}

func (o *OrderItem) ID() int64         { return o.id }
func (o *OrderItem) HasID() bool       { return o.id > 0 }
func (o *OrderItem) Item() Ref[Item]   { return o.item }
func (o *OrderItem) Order() Ref[Order] { return o.order }
func (o *OrderItem) UnitPrice() int64  { return o.unitPrice }
func (o *OrderItem) Quantity() int64   { return o.quantity }

// LoadItem / LoadOrder は参照をその場で解決する。参照先（キー）は変えない。
func (o *OrderItem) LoadItem(ctx context.Context, l Loader[Item]) error {
	return o.item.Load(ctx, l)
}

func (o *OrderItem) LoadOrder(ctx context.Context, l Loader[Order]) error {
	return o.order.Load(ctx, l)
}

// TotalPrice は単価×数量。
func (o *OrderItem) TotalPrice() int64 {
	return o.unitPrice * o.quantity
}

// AdjustQuantity は数量を訂正する。失敗時は何も変えない。
func (o *OrderItem) AdjustQuantity(quantity int64) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be >= 1, got %d: %w", quantity, ErrInvalidArgument)
	}
	o.quantity = quantity
	return nil
}

// CorrectUnitPrice は単価を訂正する。Item の現在価格から再計算はしない。
func (o *OrderItem) CorrectUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return fmt.Errorf("unit price must be >= 0, got %d: %w", unitPrice, ErrInvalidArgument)
	}
	o.unitPrice = unitPrice
	return nil
}

// AssignID は永続化層が初回保存時に一度だけ呼ぶ。
func (o *OrderItem) AssignID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", id, ErrInvalidArgument)
	}
	if o.id != 0 {
		return fmt.Errorf("id already assigned (%d): %w", o.id, ErrInvalidArgument)
	}
	o.id = id
	return nil
}
