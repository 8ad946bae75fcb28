package recipe

import (
	"context"
	"fmt"
	"time"

	"recipe-manager/internal/core/store"
	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜管理服務
// 負責 CRUD 編排與去重決策的套用，去重引擎本身為純函數
type Service struct {
	store   store.RecipeStore
	matcher *Matcher
}

// NewService 創建食譜管理服務
func NewService(recipeStore store.RecipeStore, matcher *Matcher) *Service {
	if matcher == nil {
		matcher = defaultMatcher
	}
	return &Service{
		store:   recipeStore,
		matcher: matcher,
	}
}

// SaveRecipe 儲存食譜，若與既有食譜重複則拒絕
// 以既有食譜在前、新食譜在後的順序跑一趟去重，新食譜被回報即為重複
func (s *Service) SaveRecipe(ctx context.Context, r Recipe) (*Recipe, error) {
	if r.Title == "" {
		return nil, common.NewValidationError("title is required")
	}
	if !r.Difficulty.IsValid() {
		return nil, common.NewValidationError("invalid difficulty")
	}
	// ID 由本服務指派，呼叫端帶入的值一律忽略
	r.ID = ""

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	candidates := make([]Recipe, 0, len(existing)+1)
	candidates = append(candidates, existing...)
	candidates = append(candidates, r)

	result := s.matcher.Deduplicate(candidates)
	for _, report := range result.Duplicates {
		// 既有食譜皆已有 ID；ID 為空者即本次的新食譜
		// 既有資料中的重複不阻擋新增，留給清理操作處理
		if report.Duplicate.ID != "" {
			continue
		}
		common.LogDuplicateFound(report.Duplicate.Title, report.OriginalTitle, report.Reason)
		return nil, &DuplicateError{Report: report}
	}

	r.ID = common.GenerateUUID()
	r.CreatedAt = time.Now()
	if err := s.store.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	common.LogInfo("食譜已儲存",
		zap.String("id", r.ID),
		zap.String("標題", r.Title),
	)
	common.LogDebug("食譜內容",
		zap.String("id", r.ID),
		zap.String("食材", common.FormatIngredients(r.Ingredients)),
	)
	return &r, nil
}

// ListRecipes 列出全部食譜
func (s *Service) ListRecipes(ctx context.Context) ([]Recipe, error) {
	return s.store.List(ctx)
}

// GetRecipe 讀取單筆食譜
func (s *Service) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	return s.store.Get(ctx, id)
}

// DeleteRecipe 刪除單筆食譜
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// CleanupDuplicates 對既有集合跑一趟去重並刪除被標記的重複食譜
// 建立時間較早者為保留方
func (s *Service) CleanupDuplicates(ctx context.Context) (DeduplicationResult, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return DeduplicationResult{}, fmt.Errorf("failed to list recipes: %w", err)
	}

	result := s.matcher.Deduplicate(existing)
	for _, report := range result.Duplicates {
		common.LogDuplicateFound(report.Duplicate.Title, report.OriginalTitle, report.Reason)
		if err := s.store.Delete(ctx, report.Duplicate.ID); err != nil {
			return DeduplicationResult{}, fmt.Errorf("failed to delete duplicate %s: %w", report.Duplicate.ID, err)
		}
	}

	common.LogInfo("重複清理完成",
		zap.Int("保留", len(result.Unique)),
		zap.Int("移除", result.RemovedCount),
	)
	return result, nil
}

// CheckDuplicate 判斷兩筆食譜內容是否為同一道菜
func (s *Service) CheckDuplicate(a, b Recipe) bool {
	return s.matcher.AreIdentical(a, b)
}
