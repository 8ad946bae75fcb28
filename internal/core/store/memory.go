package store

import (
	"context"
	"fmt"
	"sync"

	"recipe-manager/internal/pkg/common"
)

// MemoryStore 記憶體儲存層
// 供儲存層停用時與測試使用，介面行為與 RedisStore 一致
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]common.Recipe
}

// NewMemoryStore 創建記憶體儲存層
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]common.Recipe),
	}
}

// Save 以 r.ID 為鍵寫入食譜
func (s *MemoryStore) Save(ctx context.Context, r common.Recipe) error {
	if r.ID == "" {
		return fmt.Errorf("recipe id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[r.ID] = r
	return nil
}

// Get 讀取單筆食譜
func (s *MemoryStore) Get(ctx context.Context, id string) (common.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.store[id]
	if !exists {
		return common.Recipe{}, ErrNotFound
	}
	return r, nil
}

// List 回傳全部食譜，依建立時間排序
func (s *MemoryStore) List(ctx context.Context) ([]common.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]common.Recipe, 0, len(s.store))
	for _, r := range s.store {
		recipes = append(recipes, r)
	}
	sortByCreation(recipes)
	return recipes, nil
}

// Delete 刪除單筆食譜
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.store[id]; !exists {
		return ErrNotFound
	}
	delete(s.store, id)
	return nil
}

// Close 清空儲存
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = make(map[string]common.Recipe)
	return nil
}
