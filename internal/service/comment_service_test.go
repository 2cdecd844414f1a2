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

type commentFixture struct {
	svc      *CommentService
	author   model.Identity
	other    model.Identity
	admin    model.Identity
	resource *model.Resource
}

func newCommentFixture(t *testing.T) commentFixture {
	t.Helper()
	db := testinfra.NewTestDB(t)
	author := testinfra.CreateUser(t, db, "author", model.Freelancer)
	other := testinfra.CreateUser(t, db, "other", model.Client)
	admin := testinfra.CreateUser(t, db, "admin", model.Admin)
	category := testinfra.CreateCategory(t, db, "Guides")
	return commentFixture{
		svc:      NewCommentService(repository.NewCommentRepository(db), repository.NewResourceRepository(db)),
		author:   testinfra.Identity(author),
		other:    testinfra.Identity(other),
		admin:    testinfra.Identity(admin),
		resource: testinfra.CreateResource(t, db, category.ID, author.ID, true),
	}
}

func TestToggleReactionRequiresExactlyOneTarget(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	_, err := f.svc.ToggleReaction(ctx, f.author, ToggleReactionRequest{CommentID: "c", ReplyID: "r", Type: model.ReactionLike})
	require.Error(t, err)
	assert.True(t, util.IsBadRequest(err))
	assert.Contains(t, err.Error(), "not both")

	_, err = f.svc.ToggleReaction(ctx, f.author, ToggleReactionRequest{Type: model.ReactionLike})
	require.Error(t, err)
	assert.True(t, util.IsBadRequest(err))
}

func TestToggleReactionDispatchesToReply(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.svc.CreateComment(ctx, f.author, f.resource.ID, CommentRequest{Content: "Great checklist"})
	require.NoError(t, err)
	reply, err := f.svc.CreateReply(ctx, f.other, comment.ID, CommentRequest{Content: "Agreed"})
	require.NoError(t, err)

	result, err := f.svc.ToggleReaction(ctx, f.author, ToggleReactionRequest{ReplyID: reply.ID, Type: model.ReactionLove})
	require.NoError(t, err)
	assert.True(t, result.Added)
	require.Len(t, result.Reactions, 1)
	assert.Equal(t, model.ReactionLove, result.Reactions[0].Type)
	assert.True(t, result.Reactions[0].Reacted)

	views, total, err := f.svc.ListComments(ctx, f.other, f.resource.ID, util.NewPagination("1", "10"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Reactions)
	require.Len(t, views[0].Replies, 1)
	require.Len(t, views[0].Replies[0].Reactions, 1)
	assert.False(t, views[0].Replies[0].Reactions[0].Reacted)
}

func TestCommentOwnership(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.svc.CreateComment(ctx, f.author, f.resource.ID, CommentRequest{Content: "First"})
	require.NoError(t, err)

	_, err = f.svc.UpdateComment(ctx, f.other, comment.ID, CommentRequest{Content: "Hijack"})
	assert.True(t, util.IsBadRequest(err))

	updated, err := f.svc.UpdateComment(ctx, f.author, comment.ID, CommentRequest{Content: "Edited"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Content)

	assert.True(t, util.IsBadRequest(f.svc.DeleteComment(ctx, f.other, comment.ID)))
	require.NoError(t, f.svc.DeleteComment(ctx, f.admin, comment.ID))

	_, err = f.svc.CreateReply(ctx, f.other, comment.ID, CommentRequest{Content: "Too late"})
	assert.True(t, util.IsNotFound(err))
}
