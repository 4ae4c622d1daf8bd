package model

import (
	"context"
	"fmt"
)

// Loader は ID から参照先を読み込む。ItemRepository / OrderRepository が満たす。
type Loader[T any] interface {
	FindByID(ctx context.Context, id int64) (T, error)
}

// Ref は多対一の参照。
// 未解決（キーだけ）か解決済み（値あり）のどちらか。アクセス時に勝手に読み込まない。
type Ref[T any] struct {
	key    int64
	value  T
	loaded bool
}

// NewRef は未解決の参照を作る。
func NewRef[T any](key int64) Ref[T] {
	return Ref[T]{key: key}
}

// Resolved は読み込み済みの参照を作る。
func Resolved[T any](key int64, v T) Ref[T] {
	return Ref[T]{key: key, value: v, loaded: true}
}

func (r Ref[T]) Key() int64 { return r.key }

// IsNull は有効なキー（正の ID）を持たない参照か。値が入っていてもキーがなければ null。
func (r Ref[T]) IsNull() bool {
	return r.key <= 0
}

func (r Ref[T]) IsLoaded() bool { return r.loaded }

// Get は解決済みなら値を返す。未解決なら ok=false。
func (r Ref[T]) Get() (T, bool) {
	return r.value, r.loaded
}

// Load は loader で参照先を読み込む。解決済みなら何もしない。
func (r *Ref[T]) Load(ctx context.Context, l Loader[T]) error {
	if r.loaded {
		return nil
	}
	if r.IsNull() {
		return fmt.Errorf("load null reference: %w", ErrInvalidArgument)
	}
	v, err := l.FindByID(ctx, r.key)
	if err != nil {
		return err
	}
	r.value = v
	r.loaded = true
	return nil
}
