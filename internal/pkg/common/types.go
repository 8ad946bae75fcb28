package common

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty 食譜難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid 檢查難度是否在允許的集合內（空值視為未填寫）
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, "":
		return true
	}
	return false
}

// Ingredient 食材
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe 食譜
// ID 由儲存層指派，內容比對不使用 ID
type Recipe struct {
	ID              string       `json:"id,omitempty"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	CookTimeMinutes int          `json:"cook_time_minutes,omitempty"`
	Servings        int          `json:"servings,omitempty"`
	Difficulty      Difficulty   `json:"difficulty,omitempty"`
	Ingredients     []Ingredient `json:"ingredients,omitempty"`
	CreatedBy       string       `json:"created_by,omitempty"`
	CreatedAt       time.Time    `json:"created_at,omitempty"`
}

// Identity 身份識別結果
type Identity struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// AnonymousIdentity 匿名身份（身份服務停用時使用）
var AnonymousIdentity = Identity{UserID: "anonymous", IsAdmin: false}

// FormatIngredients 格式化食材列表
func FormatIngredients(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", ing.Name, ing.Amount))
	}
	return sb.String()
}
