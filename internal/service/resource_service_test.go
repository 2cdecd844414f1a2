package service

import (
	"context"
	"testing"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/testinfra"
	"freelance_hub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResourceService(db *gorm.DB, rdb *redis.Client) *ResourceService {
	return NewResourceService(
		repository.NewResourceRepository(db),
		repository.NewCategoryRepository(db),
		nil,
		rdb,
		10*time.Minute,
	)
}

func TestResourceViewCountDeduplicated(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	author := testinfra.CreateUser(t, db, "author", model.Admin)
	reader := testinfra.CreateUser(t, db, "reader", model.Client)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, author.ID, true)

	svc := newResourceService(db, rdb)

	got, err := svc.Get(ctx, testinfra.Identity(reader), resource.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	got, err = svc.Get(ctx, testinfra.Identity(reader), resource.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	got, err = svc.Get(ctx, testinfra.Identity(author), resource.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ViewCount)

	mr.FastForward(11 * time.Minute)
	got, err = svc.Get(ctx, testinfra.Identity(reader), resource.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.ViewCount)
}

func TestResourceViewCountWithoutRedis(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	author := testinfra.CreateUser(t, db, "author", model.Admin)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, author.ID, true)

	svc := newResourceService(db, nil)
	for i := 0; i < 2; i++ {
		_, err := svc.Get(ctx, testinfra.Identity(author), resource.ID)
		require.NoError(t, err)
	}

	var stored model.Resource
	require.NoError(t, db.First(&stored, "id = ?", resource.ID).Error)
	assert.EqualValues(t, 2, stored.ViewCount)
}

func TestCreateResourceRequiresActiveCategory(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	admin := testinfra.Identity(testinfra.CreateUser(t, db, "admin", model.Admin))
	category := testinfra.CreateCategory(t, db, "Guides")
	require.NoError(t, db.Model(&model.Category{}).Where("id = ?", category.ID).Update("is_active", false).Error)

	svc := newResourceService(db, nil)

	_, err := svc.Create(ctx, admin, CreateResourceRequest{Title: "Draft", CategoryID: category.ID})
	assert.True(t, util.IsBadRequest(err))

	_, err = svc.Create(ctx, admin, CreateResourceRequest{Title: "Draft", CategoryID: "missing"})
	assert.True(t, util.IsBadRequest(err))
}

func TestResourceUpdateReplacesAttachments(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	admin := testinfra.Identity(testinfra.CreateUser(t, db, "admin", model.Admin))
	category := testinfra.CreateCategory(t, db, "Guides")

	svc := newResourceService(db, nil)
	created, err := svc.Create(ctx, admin, CreateResourceRequest{
		Title:       "Pricing guide",
		CategoryID:  category.ID,
		IsPublished: true,
		Attachments: []AttachmentInput{{FileName: "a.pdf", URL: "https://cdn.test/a.pdf"}},
	})
	require.NoError(t, err)
	require.Len(t, created.Attachments, 1)

	unpublish := false
	updated, err := svc.Update(ctx, created.ID, UpdateResourceRequest{
		IsPublished: &unpublish,
		Attachments: []AttachmentInput{
			{FileName: "b.pdf", URL: "https://cdn.test/b.pdf"},
			{FileName: "c.pdf", URL: "https://cdn.test/c.pdf"},
		},
	})
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)
	assert.Len(t, updated.Attachments, 2)

	list, total, err := svc.List(ctx, ResourceQuery{}, util.NewPagination("1", "10"))
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	_, _, err = svc.ListAll(ctx, model.Identity{UserID: 99, Role: model.Client}, ResourceQuery{}, util.NewPagination("1", "10"))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
