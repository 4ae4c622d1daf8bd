package model_test

import (
	"context"
	"errors"
	"testing"

	"orderline/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemLoaderStub struct {
	items map[int64]model.Item
	calls int
}

func (s *itemLoaderStub) FindByID(ctx context.Context, id int64) (model.Item, error) {
	s.calls++
	it, ok := s.items[id]
	if !ok {
		return model.Item{}, errors.New("not found")
	}
	return it, nil
}

func TestRef_LoadResolvesOnce(t *testing.T) {
	loader := &itemLoaderStub{items: map[int64]model.Item{3: {ID: 3, Name: "pen", Price: 120}}}
	ref := model.NewRef[model.Item](3)

	_, ok := ref.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, loader.calls)

	require.NoError(t, ref.Load(context.Background(), loader))
	require.NoError(t, ref.Load(context.Background(), loader))

	it, ok := ref.Get()
	assert.True(t, ok)
	assert.Equal(t, "pen", it.Name)
	assert.Equal(t, 1, loader.calls)
}

func TestRef_LoadError(t *testing.T) {
	loader := &itemLoaderStub{items: map[int64]model.Item{}}
	ref := model.NewRef[model.Item](3)

	assert.Error(t, ref.Load(context.Background(), loader))
	assert.False(t, ref.IsLoaded())
}

func TestRef_NullCannotLoad(t *testing.T) {
	var ref model.Ref[model.Item]
	assert.True(t, ref.IsNull())

	err := ref.Load(context.Background(), &itemLoaderStub{})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestRef_ResolvedWithoutKeyIsNull(t *testing.T) {
	ref := model.Resolved(0, model.Item{Name: "x"})
	assert.True(t, ref.IsNull())
	assert.True(t, ref.IsLoaded())
}

type orderLoaderStub struct {
	orders map[int64]model.Order
}

func (s *orderLoaderStub) FindByID(ctx context.Context, id int64) (model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, errors.New("not found")
	}
	return o, nil
}

func TestOrderItem_LoadReferencesInPlace(t *testing.T) {
	items := &itemLoaderStub{items: map[int64]model.Item{4: {ID: 4, Name: "cup", Price: 800}}}
	orders := &orderLoaderStub{orders: map[int64]model.Order{1: {ID: 1, Status: model.OrderStatusOrder}}}
	oi, err := model.NewOrderItem(model.NewRef[model.Item](4), model.NewRef[model.Order](1), 700, 1)
	require.NoError(t, err)

	require.NoError(t, oi.LoadItem(context.Background(), items))
	require.NoError(t, oi.LoadOrder(context.Background(), orders))

	it, ok := oi.Item().Get()
	assert.True(t, ok)
	assert.Equal(t, int64(800), it.Price)
	o, ok := oi.Order().Get()
	assert.True(t, ok)
	assert.Equal(t, model.OrderStatusOrder, o.Status)
	assert.Equal(t, int64(4), oi.Item().Key())
	assert.Equal(t, int64(1), oi.Order().Key())
	// 単価はスナップショットのまま
	assert.Equal(t, int64(700), oi.UnitPrice())
}

func TestOrderItem_ReferencesCannotBeReplaced(t *testing.T) {
	items := &itemLoaderStub{items: map[int64]model.Item{4: {ID: 4, Name: "cup", Price: 800}}}
	oi, err := model.NewOrderItem(model.NewRef[model.Item](4), model.NewRef[model.Order](1), 700, 1)
	require.NoError(t, err)

	// アクセサはコピーを返す。コピーを解決しても明細側は未解決のまま
	cp := oi.Item()
	require.NoError(t, cp.Load(context.Background(), items))
	assert.True(t, cp.IsLoaded())
	assert.False(t, oi.Item().IsLoaded())

	assert.Equal(t, int64(4), oi.Item().Key())
	assert.Equal(t, int64(1), oi.Order().Key())
}

func TestOrderItem_LoadMissingKeepsReference(t *testing.T) {
	oi, err := model.NewOrderItem(model.NewRef[model.Item](5), model.NewRef[model.Order](1), 700, 1)
	require.NoError(t, err)

	assert.Error(t, oi.LoadItem(context.Background(), &itemLoaderStub{items: map[int64]model.Item{}}))
	assert.False(t, oi.Item().IsLoaded())
	assert.Equal(t, int64(5), oi.Item().Key())
}
