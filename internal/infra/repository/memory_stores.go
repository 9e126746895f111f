package repository

import (
	"context"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"
)

// 全Storeのメモリ実装をまとめた束
type MemoryStores struct {
	admins     *MemoryStore[model.Admin]
	developers *MemoryStore[model.Developer]
	customers  *MemoryStore[model.Customer]
	games      *MemoryStore[model.Game]
	discounts  *MemoryStore[model.Discount]
	carts      *MemoryStore[model.Cart]
	orders     *MemoryStore[model.Order]
	reviews    *MemoryStore[model.Review]
	payments   *MemoryStore[model.PaymentMethod]
}

func NewMemoryStores() *MemoryStores {
	return &MemoryStores{
		admins:     NewMemoryStore[model.Admin](),
		developers: NewMemoryStore[model.Developer](),
		customers:  NewMemoryStore[model.Customer](),
		games:      NewMemoryStore[model.Game](),
		discounts:  NewMemoryStore[model.Discount](),
		carts:      NewMemoryStore[model.Cart](),
		orders:     NewMemoryStore[model.Order](),
		reviews:    NewMemoryStore[model.Review](),
		payments:   NewMemoryStore[model.PaymentMethod](),
	}
}

func (s *MemoryStores) Admins() repo.Store[model.Admin]           { return s.admins }
func (s *MemoryStores) Developers() repo.Store[model.Developer]   { return s.developers }
func (s *MemoryStores) Customers() repo.Store[model.Customer]     { return s.customers }
func (s *MemoryStores) Games() repo.Store[model.Game]             { return s.games }
func (s *MemoryStores) Discounts() repo.Store[model.Discount]     { return s.discounts }
func (s *MemoryStores) Carts() repo.Store[model.Cart]             { return s.carts }
func (s *MemoryStores) Orders() repo.Store[model.Order]           { return s.orders }
func (s *MemoryStores) Reviews() repo.Store[model.Review]         { return s.reviews }
func (s *MemoryStores) Payments() repo.Store[model.PaymentMethod] { return s.payments }

// メモリバックエンドのTxManager。ロールバックはできないので、
// fnが途中で失敗するとそれまでの書き込みは残る。
type MemoryTxManager struct {
	stores *MemoryStores
}

func NewMemoryTxManager(stores *MemoryStores) *MemoryTxManager {
	return &MemoryTxManager{stores: stores}
}

func (tm *MemoryTxManager) WithinTx(ctx context.Context, fn func(s repo.Stores) error) error {
	return fn(tm.stores)
}
