package repository

import (
	"context"
	"encoding/json"
	"sync"

	repo "gamestore/internal/repository"
)

// Storeのメモリ実装。レコードはJSONで保持し、出し入れのたびに
// 復元するので、呼び出し側が戻り値をいじっても内部状態は壊れない。
type MemoryStore[T repo.Entity] struct {
	mu   sync.RWMutex
	data map[int64][]byte
}

func NewMemoryStore[T repo.Entity]() *MemoryStore[T] {
	return &MemoryStore[T]{data: map[int64][]byte{}}
}

// 同じIDがあればErrDuplicateID。上書きはしない。
func (s *MemoryStore[T]) Create(ctx context.Context, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.EntityID()
	if _, ok := s.data[id]; ok {
		return repo.ErrDuplicateID
	}
	s.data[id] = raw
	return nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T

	s.mu.RLock()
	raw, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return rec, repo.ErrNotFound
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// 存在しないIDは何もしない（Store契約どおり）
func (s *MemoryStore[T]) Update(ctx context.Context, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.EntityID()
	if _, ok := s.data[id]; !ok {
		return nil
	}
	s.data[id] = raw
	return nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}

// 全件をコピーで返す。順序は保証しない。
func (s *MemoryStore[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.data))
	for _, raw := range s.data {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
