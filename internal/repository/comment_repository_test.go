package repository

import (
	"context"
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentReactionSummaries(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	alice := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	bob := testinfra.CreateUser(t, db, "bob", model.Client)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, alice.ID, true)

	repo := NewCommentRepository(db)
	comment := &model.ResourceComment{ResourceID: resource.ID, UserID: alice.ID, Content: "Great checklist"}
	require.NoError(t, repo.CreateComment(ctx, comment))

	_, err := repo.ToggleCommentReaction(ctx, alice.ID, comment.ID, model.ReactionLike)
	require.NoError(t, err)
	_, err = repo.ToggleCommentReaction(ctx, bob.ID, comment.ID, model.ReactionLike)
	require.NoError(t, err)
	_, err = repo.ToggleCommentReaction(ctx, bob.ID, comment.ID, model.ReactionCurious)
	require.NoError(t, err)

	summaries, err := repo.CommentReactionSummaries(ctx, []string{comment.ID}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.ReactionSummary{
		{Type: model.ReactionLike, Count: 2, Reacted: true},
		{Type: model.ReactionCurious, Count: 1, Reacted: false},
	}, summaries[comment.ID])
}

func TestToggleReplyReactionDistinguishesType(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	alice := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, alice.ID, true)

	repo := NewCommentRepository(db)
	comment := &model.ResourceComment{ResourceID: resource.ID, UserID: alice.ID, Content: "Question"}
	require.NoError(t, repo.CreateComment(ctx, comment))
	reply := &model.CommentReply{CommentID: comment.ID, UserID: alice.ID, Content: "Answer"}
	require.NoError(t, repo.CreateReply(ctx, reply))

	added, err := repo.ToggleReplyReaction(ctx, alice.ID, reply.ID, model.ReactionLove)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.ToggleReplyReaction(ctx, alice.ID, reply.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.ToggleReplyReaction(ctx, alice.ID, reply.ID, model.ReactionLove)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestDeleteCommentCascade(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	alice := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, alice.ID, true)

	repo := NewCommentRepository(db)
	comment := &model.ResourceComment{ResourceID: resource.ID, UserID: alice.ID, Content: "Question"}
	require.NoError(t, repo.CreateComment(ctx, comment))
	reply := &model.CommentReply{CommentID: comment.ID, UserID: alice.ID, Content: "Answer"}
	require.NoError(t, repo.CreateReply(ctx, reply))
	_, err := repo.ToggleCommentReaction(ctx, alice.ID, comment.ID, model.ReactionLike)
	require.NoError(t, err)
	_, err = repo.ToggleReplyReaction(ctx, alice.ID, reply.ID, model.ReactionLike)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCommentCascade(ctx, comment.ID))

	found, err := repo.FindReply(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	var reactions int64
	require.NoError(t, db.Model(&model.CommentReaction{}).Count(&reactions).Error)
	assert.Zero(t, reactions)
	require.NoError(t, db.Model(&model.ReplyReaction{}).Count(&reactions).Error)
	assert.Zero(t, reactions)
}

func TestListCommentsOrdersRepliesOldestFirst(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	alice := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, alice.ID, true)

	repo := NewCommentRepository(db)
	comment := &model.ResourceComment{ResourceID: resource.ID, UserID: alice.ID, Content: "Question"}
	require.NoError(t, repo.CreateComment(ctx, comment))
	for _, content := range []string{"first", "second"} {
		require.NoError(t, repo.CreateReply(ctx, &model.CommentReply{CommentID: comment.ID, UserID: alice.ID, Content: content}))
	}

	comments, total, err := repo.ListComments(ctx, resource.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 2)
	assert.Equal(t, "first", comments[0].Replies[0].Content)
	require.NotNil(t, comments[0].User)
	assert.Equal(t, "alice", comments[0].User.Name)
}
