package store

import (
	"context"
	"testing"
	"time"

	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCRUD(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	r := common.Recipe{ID: "1", Title: "Chicken Soup", CreatedAt: time.Now()}
	require.NoError(t, s.Save(ctx, r))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Soup", got.Title)

	require.NoError(t, s.Delete(ctx, "1"))

	_, err = s.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "1"), ErrNotFound)
}

func TestMemoryStoreSaveRequiresID(t *testing.T) {
	s := NewMemoryStore()

	err := s.Save(context.Background(), common.Recipe{Title: "No ID"})
	assert.Error(t, err)
}

func TestMemoryStoreListOrdersByCreation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, s.Save(ctx, common.Recipe{ID: "newer", Title: "B", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, s.Save(ctx, common.Recipe{ID: "older", Title: "A", CreatedAt: base}))
	// 建立時間相同時以 ID 排序
	require.NoError(t, s.Save(ctx, common.Recipe{ID: "tie-b", Title: "C", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Save(ctx, common.Recipe{ID: "tie-a", Title: "D", CreatedAt: base.Add(time.Hour)}))

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 4)
	assert.Equal(t, "older", recipes[0].ID)
	assert.Equal(t, "newer", recipes[1].ID)
	assert.Equal(t, "tie-a", recipes[2].ID)
	assert.Equal(t, "tie-b", recipes[3].ID)
}

func TestMemoryStoreCloseClears(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, common.Recipe{ID: "1", Title: "Soup"}))
	require.NoError(t, s.Close())

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
