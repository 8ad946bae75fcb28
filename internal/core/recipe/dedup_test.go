package recipe

import (
	"testing"

	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateEmptyInput(t *testing.T) {
	result := Deduplicate(nil)

	assert.Empty(t, result.Unique)
	assert.Empty(t, result.Duplicates)
	assert.Equal(t, 0, result.RemovedCount)
}

func TestDeduplicateNoDuplicates(t *testing.T) {
	records := []Recipe{
		{ID: "1", Title: "Chicken Soup"},
		{ID: "2", Title: "Beef Stew", Description: "hearty", CookTimeMinutes: 90, Servings: 4},
		{ID: "3", Title: "Apple Pie", Description: "dessert", CookTimeMinutes: 60, Servings: 8, Difficulty: common.DifficultyMedium},
	}

	result := Deduplicate(records)

	assert.Len(t, result.Unique, 3)
	assert.Empty(t, result.Duplicates)
	assert.Equal(t, 0, result.RemovedCount)
}

func TestDeduplicateFirstWins(t *testing.T) {
	// B 透過標題比對到 A，C 透過食材比對到 A，B 與 C 彼此不直接相同
	ingredients := []Ingredient{
		{Name: "chicken", Amount: "1 lb"},
		{Name: "water", Amount: "4 cups"},
	}
	a := Recipe{ID: "a", Title: "Chicken Soup", Description: "classic", CookTimeMinutes: 45, Servings: 4, Ingredients: ingredients}
	b := Recipe{ID: "b", Title: "chicken soup", Description: "mine", CookTimeMinutes: 90, Servings: 8}
	c := Recipe{ID: "c", Title: "Grandma's Broth", Description: "old", CookTimeMinutes: 30, Servings: 2, Ingredients: ingredients}

	result := Deduplicate([]Recipe{a, b, c})

	require.Len(t, result.Unique, 1)
	assert.Equal(t, "a", result.Unique[0].ID)

	require.Len(t, result.Duplicates, 2)
	assert.Equal(t, "b", result.Duplicates[0].Duplicate.ID)
	assert.Equal(t, "Chicken Soup", result.Duplicates[0].OriginalTitle)
	assert.Equal(t, "c", result.Duplicates[1].Duplicate.ID)
	assert.Equal(t, "Chicken Soup", result.Duplicates[1].OriginalTitle)
	assert.Equal(t, 2, result.RemovedCount)
}

func TestDeduplicateReportsFirstMatchingCandidate(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "tomato", Amount: "3"},
		{Name: "basil", Amount: "1 bunch"},
	}
	x := Recipe{ID: "x", Title: "Tomato Soup", Description: "smooth", CookTimeMinutes: 25, Servings: 2}
	y := Recipe{ID: "y", Title: "Red Broth", Description: "chunky", CookTimeMinutes: 60, Servings: 6, Ingredients: ingredients}
	// z 同時比對到 x（標題）與 y（食材），報告只記錄掃描順序中第一個命中者
	z := Recipe{ID: "z", Title: "tomato soup", Description: "other", CookTimeMinutes: 10, Servings: 1, Ingredients: ingredients}

	result := Deduplicate([]Recipe{x, y, z})

	require.Len(t, result.Unique, 2)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "z", result.Duplicates[0].Duplicate.ID)
	assert.Equal(t, "Tomato Soup", result.Duplicates[0].OriginalTitle)
}

func TestDeduplicateReason(t *testing.T) {
	result := Deduplicate([]Recipe{
		{ID: "1", Title: "Pancakes"},
		{ID: "2", Title: "pancakes"},
	})

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "Similar content detected", result.Duplicates[0].Reason)
}

func TestDeduplicateIdempotent(t *testing.T) {
	records := []Recipe{
		{ID: "1", Title: "Chicken Soup"},
		{ID: "2", Title: "chicken soup"},
		{ID: "3", Title: "Beef Stew", Description: "hearty", CookTimeMinutes: 90, Servings: 4},
		{ID: "4", Title: "beef stew", Description: "other", CookTimeMinutes: 10, Servings: 1},
	}

	first := Deduplicate(records)
	second := Deduplicate(first.Unique)

	assert.Empty(t, second.Duplicates)
	assert.Equal(t, 0, second.RemovedCount)
	assert.Equal(t, first.Unique, second.Unique)
}

func TestDeduplicateOrderSensitivity(t *testing.T) {
	a := Recipe{ID: "a", Title: "Chicken Soup", Description: "first"}
	b := Recipe{ID: "b", Title: "chicken soup", Description: "second"}

	forward := Deduplicate([]Recipe{a, b})
	require.Len(t, forward.Unique, 1)
	assert.Equal(t, "a", forward.Unique[0].ID)

	reversed := Deduplicate([]Recipe{b, a})
	require.Len(t, reversed.Unique, 1)
	assert.Equal(t, "b", reversed.Unique[0].ID)
}

func TestDeduplicateDoesNotMutateInput(t *testing.T) {
	records := []Recipe{
		{ID: "1", Title: "Chicken Soup"},
		{ID: "2", Title: "chicken soup"},
	}
	original := make([]Recipe, len(records))
	copy(original, records)

	Deduplicate(records)

	assert.Equal(t, original, records)
}

func TestDeduplicateEndToEnd(t *testing.T) {
	records := []Recipe{
		{
			ID:    "1",
			Title: "Chicken Soup",
			Ingredients: []Ingredient{
				{Name: "chicken", Amount: "1 lb"},
				{Name: "water", Amount: "4 cups"},
			},
		},
		{
			ID:    "2",
			Title: "chicken soup",
			Ingredients: []Ingredient{
				{Name: "chicken", Amount: "2 lb"},
			},
		},
		{
			ID:    "3",
			Title: "Beef Stew",
			Ingredients: []Ingredient{
				{Name: "beef", Amount: "1 lb"},
			},
		},
	}

	result := Deduplicate(records)

	require.Len(t, result.Unique, 2)
	assert.Equal(t, "Chicken Soup", result.Unique[0].Title)
	assert.Equal(t, "Beef Stew", result.Unique[1].Title)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "2", result.Duplicates[0].Duplicate.ID)
	assert.Equal(t, "Chicken Soup", result.Duplicates[0].OriginalTitle)
	assert.Equal(t, 1, result.RemovedCount)
}
