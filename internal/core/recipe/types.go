package recipe

import (
	"fmt"

	"recipe-manager/internal/pkg/common"
)

// Recipe 食譜記錄
type Recipe = common.Recipe

// Ingredient 食材
type Ingredient = common.Ingredient

// DuplicateReport 重複報告
// 每筆重複記錄都標注其比對到的原始食譜標題與原因
type DuplicateReport struct {
	Duplicate     Recipe `json:"duplicate"`
	OriginalTitle string `json:"original_title"`
	Reason        string `json:"reason"`
}

// DeduplicationResult 去重結果
type DeduplicationResult struct {
	Unique       []Recipe          `json:"unique"`
	Duplicates   []DuplicateReport `json:"duplicates"`
	RemovedCount int               `json:"removed_count"`
}

// DuplicateError 新增食譜時偵測到重複
type DuplicateError struct {
	Report DuplicateReport
}

// Error 實現 error 介面
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate recipe: %q matches %q", e.Report.Duplicate.Title, e.Report.OriginalTitle)
}
