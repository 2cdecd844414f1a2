package service

import (
	"context"
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/testinfra"
	"freelance_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTogglePinThroughService(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	user := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, user.ID, true)

	svc := NewEngagementService(repository.NewEngagementRepository(db), repository.NewResourceRepository(db))
	identity := testinfra.Identity(user)

	first, err := svc.TogglePin(ctx, identity, resource.ID)
	require.NoError(t, err)
	assert.True(t, first.Added)

	second, err := svc.TogglePin(ctx, identity, resource.ID)
	require.NoError(t, err)
	assert.False(t, second.Added)

	pins, err := svc.ListPins(ctx, identity)
	require.NoError(t, err)
	assert.Empty(t, pins)
}

func TestFavoriteUnpublishedResourceIsHidden(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	author := testinfra.CreateUser(t, db, "author", model.Admin)
	reader := testinfra.CreateUser(t, db, "reader", model.Client)
	category := testinfra.CreateCategory(t, db, "Guides")
	draft := testinfra.CreateResource(t, db, category.ID, author.ID, false)

	svc := NewEngagementService(repository.NewEngagementRepository(db), repository.NewResourceRepository(db))

	_, err := svc.ToggleFavorite(ctx, testinfra.Identity(reader), draft.ID)
	assert.True(t, util.IsNotFound(err))

	result, err := svc.ToggleFavorite(ctx, testinfra.Identity(author), draft.ID)
	require.NoError(t, err)
	assert.True(t, result.Added)
}
