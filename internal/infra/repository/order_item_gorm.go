package repository

import (
	"context"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

var orderItemIDAsc = clause.OrderByColumn{Column: clause.Column{Name: "ORDER_ITEM_ID"}}

func (r *OrderItemGormRepository) Save(ctx context.Context, oi *model.OrderItem) error {
	if oi == nil {
		return errors.Wrap(model.ErrInvalidArgument, "save nil order item")
	}
	if !oi.HasID() {
		return r.insert(ctx, oi)
	}
	return r.update(ctx, oi)
}

func (r *OrderItemGormRepository) insert(ctx context.Context, oi *model.OrderItem) error {
	row := toOrderItemRow(oi)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return errors.Wrap(translate(err), "insert order item")
	}
	//採番されたIDを一度だけ反映
	return oi.AssignID(row.ID)
}

// 単価と数量だけ。参照先の付け替えはしない。
func (r *OrderItemGormRepository) update(ctx context.Context, oi *model.OrderItem) error {
	res := r.db.WithContext(ctx).Model(&OrderItemRow{}).
		Where(map[string]any{"ORDER_ITEM_ID": oi.ID()}).
		Updates(map[string]any{
			"orderPrice": oi.UnitPrice(),
			"count":      oi.Quantity(),
		})
	if res.Error != nil {
		return errors.Wrapf(translate(res.Error), "update order item %d", oi.ID())
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// mysql は値が同じだと 0 件になるので存在で確認する
	var n int64
	if err := r.db.WithContext(ctx).Model(&OrderItemRow{}).
		Where(map[string]any{"ORDER_ITEM_ID": oi.ID()}).
		Count(&n).Error; err != nil {
		return errors.Wrapf(err, "update order item %d", oi.ID())
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderItemGormRepository) FindByID(ctx context.Context, id int64) (*model.OrderItem, error) {
	var row OrderItemRow
	err := r.db.WithContext(ctx).Where(map[string]any{"ORDER_ITEM_ID": id}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find order item %d", id)
	}
	return toOrderItem(row)
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]*model.OrderItem, error) {
	var rows []OrderItemRow
	err := r.db.WithContext(ctx).
		Where(map[string]any{"ORDER_ID": orderID}).
		Order(orderItemIDAsc).
		Find(&rows).Error
	if err != nil {
		return []*model.OrderItem{}, errors.Wrapf(err, "list order items of order %d", orderID)
	}

	items := make([]*model.OrderItem, 0, len(rows))
	for _, row := range rows {
		oi, err := toOrderItem(row)
		if err != nil {
			return []*model.OrderItem{}, errors.Wrapf(err, "order item %d", row.ID)
		}
		items = append(items, oi)
	}
	return items, nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where(map[string]any{"ORDER_ID": orderID}).
		Delete(&OrderItemRow{})
	if res.Error != nil {
		return 0, errors.Wrapf(translate(res.Error), "delete order items of order %d", orderID)
	}
	return res.RowsAffected, nil
}

func (r *OrderItemGormRepository) CountByItemID(ctx context.Context, itemID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&OrderItemRow{}).
		Where(map[string]any{"ITEM_ID": itemID}).
		Count(&n).Error
	if err != nil {
		return 0, errors.Wrapf(err, "count order items of item %d", itemID)
	}
	return n, nil
}
