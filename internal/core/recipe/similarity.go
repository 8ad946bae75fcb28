package recipe

import (
	"strings"
	"unicode/utf8"

	"recipe-manager/internal/infrastructure/config"

	"github.com/agnivade/levenshtein"
)

// 比對門檻（策略常數，可透過設定覆寫）
const (
	// defaultTitleSimilarityThreshold 標題相似度門檻（嚴格大於）
	defaultTitleSimilarityThreshold = 0.8
	// defaultMinFieldMatches 欄位回退所需的最少一致欄位數（共 4 個欄位）
	defaultMinFieldMatches = 3
	// defaultIngredientOverlapThreshold 食材重疊比例門檻（嚴格大於，9/10 不算）
	defaultIngredientOverlapThreshold = 0.9
)

// comparedFieldCount 欄位回退比對的欄位總數：描述、烹飪時間、份量、難度
const comparedFieldCount = 4

// Matcher 食譜相似度比對器
// 無狀態、不修改輸入，兩筆食譜的比對結果只取決於內容欄位
type Matcher struct {
	titleSimilarity   float64
	minFieldMatches   int
	ingredientOverlap float64
}

// NewMatcher 創建比對器，cfg 為 nil 時使用預設門檻
func NewMatcher(cfg *config.DedupConfig) *Matcher {
	m := &Matcher{
		titleSimilarity:   defaultTitleSimilarityThreshold,
		minFieldMatches:   defaultMinFieldMatches,
		ingredientOverlap: defaultIngredientOverlapThreshold,
	}
	if cfg == nil {
		return m
	}
	if cfg.TitleSimilarity > 0 {
		m.titleSimilarity = cfg.TitleSimilarity
	}
	if cfg.MinFieldMatches > 0 {
		m.minFieldMatches = cfg.MinFieldMatches
	}
	if cfg.IngredientOverlap > 0 {
		m.ingredientOverlap = cfg.IngredientOverlap
	}
	return m
}

var defaultMatcher = NewMatcher(nil)

// AreIdentical 判斷兩筆食譜是否為同一道菜（使用預設門檻）
func AreIdentical(a, b Recipe) bool {
	return defaultMatcher.AreIdentical(a, b)
}

// AreIdentical 判斷兩筆食譜是否為同一道菜
// 依序檢查：標題完全一致、欄位相似度回退、食材重疊回退，任一命中即判定相同
func (m *Matcher) AreIdentical(a, b Recipe) bool {
	titleA := normalizeText(a.Title)
	titleB := normalizeText(b.Title)

	// 標題完全一致
	// 空白標題不走此分支，避免兩筆未命名食譜被誤判為同一道菜
	if titleA != "" && titleA == titleB {
		return true
	}

	// 欄位相似度回退：標題相近且多數欄位一致
	if titleSimilarity(titleA, titleB) > m.titleSimilarity && fieldMatches(a, b) >= m.minFieldMatches {
		return true
	}

	// 食材重疊回退：改名但內容相同的食譜
	// 只在兩邊食材皆非空且數量相同時評估；雙向評估以保證比對對稱
	if len(a.Ingredients) > 0 && len(a.Ingredients) == len(b.Ingredients) {
		if ingredientOverlap(a.Ingredients, b.Ingredients) > m.ingredientOverlap ||
			ingredientOverlap(b.Ingredients, a.Ingredients) > m.ingredientOverlap {
			return true
		}
	}

	return false
}

// normalizeText 正規化文字：轉小寫、去除前後空白、內部連續空白合併為單一空格
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// editDistance 計算兩字串的 Levenshtein 編輯距離（以 rune 為單位）
func editDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// titleSimilarity 正規化後標題的相似度：1 - 編輯距離/較長字串長度
// 兩者皆為空字串時定義為 1.0
func titleSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(editDistance(a, b))/float64(maxLen)
}

// fieldMatches 計算描述、烹飪時間、份量、難度四個欄位中完全一致的數量
func fieldMatches(a, b Recipe) int {
	matches := 0
	if a.Description == b.Description {
		matches++
	}
	if a.CookTimeMinutes == b.CookTimeMinutes {
		matches++
	}
	if a.Servings == b.Servings {
		matches++
	}
	if a.Difficulty == b.Difficulty {
		matches++
	}
	return matches
}

// ingredientOverlap 計算 a 的食材中，能在 b 找到正規化後名稱與份量皆一致者的比例
func ingredientOverlap(a, b []Ingredient) float64 {
	if len(a) == 0 {
		return 0
	}
	matches := 0
	for _, ing := range a {
		name := normalizeText(ing.Name)
		amount := normalizeText(ing.Amount)
		for _, other := range b {
			if normalizeText(other.Name) == name && normalizeText(other.Amount) == amount {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(a))
}
