package recipe

import (
	"fmt"
	"testing"

	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Chicken Soup", "chicken soup"},
		{"trim", "  chicken soup  ", "chicken soup"},
		{"collapse whitespace", "chicken \t  soup", "chicken soup"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeText(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
	assert.Equal(t, 0, editDistance("abc", "abc"))
	assert.Equal(t, 3, editDistance("abc", "xyz"))
	assert.Equal(t, 5, editDistance("", "pasta"))
}

func TestTitleSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, titleSimilarity("", ""))
	assert.Equal(t, 1.0, titleSimilarity("abc", "abc"))
	assert.Equal(t, 0.0, titleSimilarity("abc", "xyz"))
	assert.InDelta(t, 0.9, titleSimilarity("pasta bake", "pasta cake"), 1e-9)
}

func TestAreIdenticalReflexive(t *testing.T) {
	recipes := []Recipe{
		{},
		{Title: "Chicken Soup"},
		{
			Title:           "Beef Stew",
			Description:     "hearty",
			CookTimeMinutes: 90,
			Servings:        4,
			Difficulty:      common.DifficultyMedium,
			Ingredients: []Ingredient{
				{Name: "beef", Amount: "1 lb"},
				{Name: "carrot", Amount: "2"},
			},
		},
	}

	for _, r := range recipes {
		assert.True(t, AreIdentical(r, r))
	}
}

func TestAreIdenticalExactTitle(t *testing.T) {
	a := Recipe{
		Title:           "Chicken Soup",
		Description:     "grandma's version",
		CookTimeMinutes: 45,
		Servings:        4,
		Difficulty:      common.DifficultyEasy,
	}
	b := Recipe{
		Title:           "  chicken   SOUP ",
		Description:     "totally different",
		CookTimeMinutes: 120,
		Servings:        8,
		Difficulty:      common.DifficultyHard,
		Ingredients:     []Ingredient{{Name: "tofu", Amount: "1 block"}},
	}

	// 標題正規化後一致，其他欄位全不同也判定相同
	assert.True(t, AreIdentical(a, b))
}

func TestAreIdenticalBlankTitlesDoNotShortCircuit(t *testing.T) {
	// 兩筆未命名食譜不因標題皆為空而被判定相同
	a := Recipe{Title: "   ", Description: "soup", CookTimeMinutes: 10, Servings: 2}
	b := Recipe{Title: "", Description: "cake", CookTimeMinutes: 90, Servings: 8}

	assert.False(t, AreIdentical(a, b))
}

func TestAreIdenticalFieldFallback(t *testing.T) {
	a := Recipe{
		Title:           "pasta bake",
		Description:     "cheesy",
		CookTimeMinutes: 40,
		Servings:        4,
		Difficulty:      common.DifficultyEasy,
	}

	// 標題相似度 0.9，描述/時間/份量一致、難度不同 → 3/4 欄位 → 相同
	b := a
	b.Title = "pasta cake"
	b.Difficulty = common.DifficultyHard
	assert.True(t, AreIdentical(a, b))

	// 再多一個欄位不同 → 2/4 → 不同
	c := b
	c.Servings = 6
	assert.False(t, AreIdentical(a, c))
}

func TestAreIdenticalIngredientFallback(t *testing.T) {
	makeIngredients := func(n int) []Ingredient {
		out := make([]Ingredient, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, Ingredient{Name: fmt.Sprintf("ingredient %d", i), Amount: "1 cup"})
		}
		return out
	}

	a := Recipe{
		Title:           "Tomato Medley",
		Description:     "one",
		CookTimeMinutes: 10,
		Servings:        1,
		Difficulty:      common.DifficultyEasy,
		Ingredients:     makeIngredients(10),
	}
	b := Recipe{
		Title:           "Garden Harvest Bowl",
		Description:     "two",
		CookTimeMinutes: 99,
		Servings:        9,
		Difficulty:      common.DifficultyHard,
		Ingredients:     makeIngredients(10),
	}

	// 標題、描述完全不同，但食材 10/10 一致 → 相同
	assert.True(t, AreIdentical(a, b))

	// 9/10 = 0.9，門檻為嚴格大於 → 不同
	c := b
	c.Ingredients = makeIngredients(10)
	c.Ingredients[9] = Ingredient{Name: "secret spice", Amount: "1 pinch"}
	assert.False(t, AreIdentical(a, c))

	// 食材數量不同時不評估此分支
	d := b
	d.Ingredients = makeIngredients(9)
	assert.False(t, AreIdentical(a, d))

	// 兩邊皆空時不評估此分支
	e := Recipe{Title: "Garden Harvest Bowl"}
	f := Recipe{Title: "Tomato Medley"}
	assert.False(t, AreIdentical(e, f))
}

func TestAreIdenticalNormalizesIngredients(t *testing.T) {
	a := Recipe{
		Title:           "Weeknight Scramble",
		Description:     "fast",
		CookTimeMinutes: 15,
		Servings:        2,
		Ingredients: []Ingredient{
			{Name: "Chicken  Breast", Amount: "1 LB"},
			{Name: "water", Amount: "4 cups"},
		},
	}
	b := Recipe{
		Title:           "Protein Power Bowl",
		Description:     "meal prep",
		CookTimeMinutes: 40,
		Servings:        6,
		Ingredients: []Ingredient{
			{Name: "chicken breast", Amount: "1 lb"},
			{Name: " Water ", Amount: "4  cups"},
		},
	}

	assert.True(t, AreIdentical(a, b))
}

func TestAreIdenticalSymmetric(t *testing.T) {
	samples := []Recipe{
		{},
		{Title: "Chicken Soup"},
		{Title: "chicken soup", Description: "x", CookTimeMinutes: 45, Servings: 4},
		{Title: "pasta bake", Description: "cheesy", CookTimeMinutes: 40, Servings: 4, Difficulty: common.DifficultyEasy},
		{Title: "pasta cake", Description: "cheesy", CookTimeMinutes: 40, Servings: 4, Difficulty: common.DifficultyHard},
		{Title: "A", Ingredients: []Ingredient{{Name: "rice", Amount: "2 cups"}, {Name: "egg", Amount: "1"}}},
		{Title: "B", Ingredients: []Ingredient{{Name: "rice", Amount: "2 cups"}, {Name: "rice", Amount: "2 cups"}}},
		{Title: "C", Ingredients: []Ingredient{{Name: "egg", Amount: "1"}, {Name: "rice", Amount: "2 cups"}}},
	}

	for i, a := range samples {
		for j, b := range samples {
			assert.Equal(t, AreIdentical(a, b), AreIdentical(b, a), "asymmetric result for samples %d and %d", i, j)
		}
	}
}

func TestMatcherTolerantOfMissingFields(t *testing.T) {
	// 缺漏欄位只降級為「該訊號不命中」，不應 panic
	assert.NotPanics(t, func() {
		AreIdentical(Recipe{}, Recipe{Title: "Soup", Ingredients: []Ingredient{{Name: "water"}}})
	})
}

func TestNewMatcherOverrides(t *testing.T) {
	m := NewMatcher(nil)
	assert.Equal(t, defaultTitleSimilarityThreshold, m.titleSimilarity)
	assert.Equal(t, defaultMinFieldMatches, m.minFieldMatches)
	assert.Equal(t, defaultIngredientOverlapThreshold, m.ingredientOverlap)
}
