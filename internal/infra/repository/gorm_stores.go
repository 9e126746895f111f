package repository

import (
	"context"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"

	"gorm.io/gorm"
)

// エンティティ種ごとのテーブル名
const (
	tableAdmins     = "admins"
	tableDevelopers = "developers"
	tableCustomers  = "customers"
	tableGames      = "games"
	tableDiscounts  = "discounts"
	tableCarts      = "carts"
	tableOrders     = "orders"
	tableReviews    = "reviews"
	tablePayments   = "payments"
)

var allTables = []string{
	tableAdmins, tableDevelopers, tableCustomers,
	tableGames, tableDiscounts, tableCarts,
	tableOrders, tableReviews, tablePayments,
}

// エンティティ種ごとのテーブルを作成する
func Migrate(db *gorm.DB) error {
	for _, table := range allTables {
		if err := db.Table(table).AutoMigrate(&storeRow{}); err != nil {
			return err
		}
	}
	return nil
}

// 全StoreのGORM実装をまとめた束
type GormStores struct {
	db *gorm.DB
}

func NewGormStores(db *gorm.DB) *GormStores {
	return &GormStores{db: db}
}

func (s *GormStores) Admins() repo.Store[model.Admin] {
	return NewGormStore[model.Admin](s.db, tableAdmins)
}

func (s *GormStores) Developers() repo.Store[model.Developer] {
	return NewGormStore[model.Developer](s.db, tableDevelopers)
}

func (s *GormStores) Customers() repo.Store[model.Customer] {
	return NewGormStore[model.Customer](s.db, tableCustomers)
}

func (s *GormStores) Games() repo.Store[model.Game] {
	return NewGormStore[model.Game](s.db, tableGames)
}

func (s *GormStores) Discounts() repo.Store[model.Discount] {
	return NewGormStore[model.Discount](s.db, tableDiscounts)
}

func (s *GormStores) Carts() repo.Store[model.Cart] {
	return NewGormStore[model.Cart](s.db, tableCarts)
}

func (s *GormStores) Orders() repo.Store[model.Order] {
	return NewGormStore[model.Order](s.db, tableOrders)
}

func (s *GormStores) Reviews() repo.Store[model.Review] {
	return NewGormStore[model.Review](s.db, tableReviews)
}

func (s *GormStores) Payments() repo.Store[model.PaymentMethod] {
	return NewGormStore[model.PaymentMethod](s.db, tablePayments)
}

// DBバックエンドのTxManager。fn内の書き込みは1トランザクションで
// コミットされ、失敗すればまとめてロールバックされる。
type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (tm *GormTxManager) WithinTx(ctx context.Context, fn func(s repo.Stores) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//Storeはtxを持ったDBで作り直す
		return fn(NewGormStores(tx))
	})
}
