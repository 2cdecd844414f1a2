package repository

import (
	"context"
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDeleteAllowsNameReuse(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	category := &model.Category{Name: "Taxes", IsActive: true}
	require.NoError(t, repo.Create(ctx, category))
	require.NoError(t, repo.Delete(ctx, category.ID))

	found, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repo.Create(ctx, &model.Category{Name: "Taxes", IsActive: true}))
}

func TestCategoryCountResourcesAndActiveFilter(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	admin := testinfra.CreateUser(t, db, "admin", model.Admin)
	guides := testinfra.CreateCategory(t, db, "Guides")
	legal := testinfra.CreateCategory(t, db, "Legal")
	testinfra.CreateResource(t, db, guides.ID, admin.ID, false)

	repo := NewCategoryRepository(db)

	count, err := repo.CountResources(ctx, guides.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.SetActive(ctx, legal.ID, false))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Guides", active[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := repo.FindByName(ctx, "Legal")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.False(t, byName.IsActive)
}
