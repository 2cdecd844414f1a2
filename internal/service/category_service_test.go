package service

import (
	"context"
	"testing"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/testinfra"
	"freelance_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDeleteGuardedByResources(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	author := testinfra.CreateUser(t, db, "author", model.Admin)
	busy := testinfra.CreateCategory(t, db, "Busy")
	empty := testinfra.CreateCategory(t, db, "Empty")
	testinfra.CreateResource(t, db, busy.ID, author.ID, true)

	svc := NewCategoryService(repository.NewCategoryRepository(db), nil, time.Minute)

	err := svc.Delete(ctx, busy.ID)
	require.Error(t, err)
	assert.True(t, util.IsBadRequest(err))
	assert.Contains(t, err.Error(), "1 associated resources")

	require.NoError(t, svc.Delete(ctx, empty.ID))
	assert.True(t, util.IsNotFound(svc.Delete(ctx, empty.ID)))

	recreated, err := svc.Create(ctx, CreateCategoryRequest{Name: "Empty"})
	require.NoError(t, err)
	assert.True(t, recreated.IsActive)
}

func TestCategoryDuplicateName(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	testinfra.CreateCategory(t, db, "Guides")
	other := testinfra.CreateCategory(t, db, "Templates")

	svc := NewCategoryService(repository.NewCategoryRepository(db), nil, time.Minute)

	_, err := svc.Create(ctx, CreateCategoryRequest{Name: "Guides"})
	assert.True(t, util.IsBadRequest(err))

	name := "Guides"
	_, err = svc.Update(ctx, other.ID, UpdateCategoryRequest{Name: &name})
	assert.True(t, util.IsBadRequest(err))
}

func TestCategoryListCacheInvalidatedOnWrite(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	member := testinfra.Identity(testinfra.CreateUser(t, db, "member", model.Client))
	admin := testinfra.Identity(testinfra.CreateUser(t, db, "admin", model.Admin))
	guides := testinfra.CreateCategory(t, db, "Guides")

	svc := NewCategoryService(repository.NewCategoryRepository(db), rdb, time.Minute)

	categories, err := svc.List(ctx, member, false)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.True(t, mr.Exists(activeCategoriesCacheKey))

	_, err = svc.SetActive(ctx, guides.ID, false)
	require.NoError(t, err)
	assert.False(t, mr.Exists(activeCategoriesCacheKey))

	categories, err = svc.List(ctx, member, false)
	require.NoError(t, err)
	assert.Empty(t, categories)

	// 非管理员请求停用分类时忽略 includeInactive
	categories, err = svc.List(ctx, member, true)
	require.NoError(t, err)
	assert.Empty(t, categories)

	categories, err = svc.List(ctx, admin, true)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	_, err = svc.Get(ctx, member, guides.ID)
	assert.True(t, util.IsNotFound(err))
}
