package repository

import (
	"context"
	"testing"

	"orderline/internal/domain/model"
	repo "orderline/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemAndOrderGorm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := NewItemGormRepository(db).Create(ctx, model.Item{Name: "bad", Price: -1})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	it := seedItem(t, db, "pen", 100)
	got, err := NewItemGormRepository(db).FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it, got)

	_, err = NewItemGormRepository(db).FindByID(ctx, it.ID+100)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	o := seedOrder(t, db)
	assert.Equal(t, model.OrderStatusOrder, o.Status)
	gotOrder, err := NewOrderGormRepository(db).FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.MemberID, gotOrder.MemberID)
	assert.True(t, o.OrderDate.Equal(gotOrder.OrderDate))

	assert.ErrorIs(t, NewOrderGormRepository(db).Delete(ctx, o.ID+100), repo.ErrNotFound)
}
