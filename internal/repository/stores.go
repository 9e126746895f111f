package repository

import (
	"context"

	"gamestore/internal/domain/model"
)

// 全エンティティ種のStoreをまとめた束。
// ロールごとにレコード型を分けているので、アカウントは3つのStoreに分かれる。
type Stores interface {
	Admins() Store[model.Admin]
	Developers() Store[model.Developer]
	Customers() Store[model.Customer]
	Games() Store[model.Game]
	Discounts() Store[model.Discount]
	Carts() Store[model.Cart]
	Orders() Store[model.Order]
	Reviews() Store[model.Review]
	Payments() Store[model.PaymentMethod]
}

// 複数エンティティの更新を1つの論理単位として実行する。
// DBバックエンドでは実トランザクション、メモリバックエンドでは
// ロールバックなしの逐次実行になる（途中で失敗すると部分更新が残る）。
type TxManager interface {
	WithinTx(ctx context.Context, fn func(s Stores) error) error
}

// Storeの全レコードから最大IDを求めて+1する。
// 注文・ゲーム・レビューなどのID採番はすべてこの方式（削除が無ければ単調増加）。
func NextID[T Entity](ctx context.Context, s Store[T]) (int64, error) {
	all, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, rec := range all {
		if id := rec.EntityID(); id > max {
			max = id
		}
	}
	return max + 1, nil
}
