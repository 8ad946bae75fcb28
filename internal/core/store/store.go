package store

import (
	"context"
	"errors"
	"sort"

	"recipe-manager/internal/pkg/common"
)

// ErrNotFound 食譜不存在
var ErrNotFound = errors.New("recipe not found")

// RecipeStore 食譜儲存層介面
// 以不透明 ID 為鍵的 CRUD，去重引擎本身不讀寫儲存層
type RecipeStore interface {
	// Save 以 r.ID 為鍵寫入食譜
	Save(ctx context.Context, r common.Recipe) error
	// Get 讀取單筆食譜，不存在時回傳 ErrNotFound
	Get(ctx context.Context, id string) (common.Recipe, error)
	// List 回傳全部食譜，依建立時間由舊到新排序
	List(ctx context.Context) ([]common.Recipe, error)
	// Delete 刪除單筆食譜，不存在時回傳 ErrNotFound
	Delete(ctx context.Context, id string) error
	// Close 釋放連線資源
	Close() error
}

// sortByCreation 依建立時間排序，時間相同時以 ID 排序確保穩定
// 去重掃描採「先到先保留」策略，列表順序必須可重現
func sortByCreation(recipes []common.Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		if recipes[i].CreatedAt.Equal(recipes[j].CreatedAt) {
			return recipes[i].ID < recipes[j].ID
		}
		return recipes[i].CreatedAt.Before(recipes[j].CreatedAt)
	})
}
