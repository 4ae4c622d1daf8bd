package repository

import (
	"context"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if order.Status == "" {
		order.Status = model.OrderStatusOrder
	}
	row := toOrderRow(order)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Order{}, errors.Wrap(translate(err), "insert order")
	}
	return toOrder(row), nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var row OrderRow
	err := r.db.WithContext(ctx).Where(map[string]any{"ORDER_ID": orderID}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, errors.Wrapf(err, "find order %d", orderID)
	}
	return toOrder(row), nil
}

// 明細が残っていると FK で失敗する（ErrReferenceViolation）。先に DeleteByOrderID を呼ぶ。
func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).
		Where(map[string]any{"ORDER_ID": orderID}).
		Delete(&OrderRow{})
	if res.Error != nil {
		return errors.Wrapf(translate(res.Error), "delete order %d", orderID)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
