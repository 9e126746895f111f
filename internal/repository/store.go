package repository

import (
	"context"
	"errors"
)

var (
	// レコードが存在しない
	ErrNotFound = errors.New("not found")
	// 同じIDのレコードがすでに存在する
	ErrDuplicateID = errors.New("duplicate id")
)

// 整数IDを持つ永続化対象
type Entity interface {
	EntityID() int64
}

// 1種類のレコードに対する汎用CRUDの約束。
//   - CreateはIDが衝突したらErrDuplicateIDを返し、上書きはしない。
//   - Updateは存在しないIDに対して何もしない（エラーも返さない）。
//     呼び出し側はUpdateの戻り値で存在確認をしないこと。
//   - Listは内部状態のコピーを返す。順序は保証しない。
type Store[T Entity] interface {
	Create(ctx context.Context, record T) error
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]T, error)
}
