package repository

import (
	"context"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

func (r *ItemGormRepository) Create(ctx context.Context, it model.Item) (model.Item, error) {
	if it.Price < 0 {
		return model.Item{}, errors.Wrapf(model.ErrInvalidArgument, "item price must be >= 0, got %d", it.Price)
	}
	row := toItemRow(it)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Item{}, errors.Wrap(translate(err), "insert item")
	}
	return toItem(row), nil
}

// IDで商品を取得
func (r *ItemGormRepository) FindByID(ctx context.Context, id int64) (model.Item, error) {
	var row ItemRow
	err := r.db.WithContext(ctx).Where(map[string]any{"ITEM_ID": id}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, errors.Wrapf(err, "find item %d", id)
	}
	return toItem(row), nil
}
