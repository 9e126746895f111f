package repository

import (
	"context"
	"encoding/json"
	"errors"

	repo "gamestore/internal/repository"

	"gorm.io/gorm"
)

// 1テーブル=1エンティティ種。キーは整数ID、値はレコード全体のJSON。
// テーブル間の外部キー制約は張らない（参照整合性は呼び出し側の責任）。
type storeRow struct {
	ID   int64  `gorm:"primaryKey"`
	Data []byte `gorm:"type:jsonb;not null"`
}

// StoreのGORM実装
type GormStore[T repo.Entity] struct {
	db    *gorm.DB
	table string
}

func NewGormStore[T repo.Entity](db *gorm.DB, table string) *GormStore[T] {
	return &GormStore[T]{db: db, table: table}
}

// 同じIDがあればErrDuplicateID（TranslateError前提）
func (s *GormStore[T]) Create(ctx context.Context, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	row := storeRow{ID: record.EntityID(), Data: raw}
	err = s.db.WithContext(ctx).Table(s.table).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrDuplicateID
	}
	return err
}

func (s *GormStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	var row storeRow

	err := s.db.WithContext(ctx).Table(s.table).
		Where("id = ?", id).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, repo.ErrNotFound
	}
	if err != nil {
		return rec, err
	}

	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// 存在しないIDは何もしない（Store契約どおり）
func (s *GormStore[T]) Update(ctx context.Context, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Table(s.table).
		Where("id = ?", record.EntityID()).
		Update("data", raw).Error
}

func (s *GormStore[T]) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Table(s.table).
		Where("id = ?", id).
		Delete(&storeRow{}).Error
}

// 全件を復元して返す。順序は保証しない。
func (s *GormStore[T]) List(ctx context.Context) ([]T, error) {
	var rows []storeRow

	if err := s.db.WithContext(ctx).Table(s.table).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var rec T
		if err := json.Unmarshal(row.Data, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
