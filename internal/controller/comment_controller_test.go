package controller

import (
	"net/http"
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/testinfra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleReactionEndpoint(t *testing.T) {
	db := testinfra.NewTestDB(t)
	admin := testinfra.CreateUser(t, db, "admin", model.Admin)
	reader := testinfra.CreateUser(t, db, "reader", model.Client)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, admin.ID, true)

	ctrl := NewCommentController(service.NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewResourceRepository(db),
	))
	r := gin.New()
	r.Use(asUser(reader))
	r.POST("/api/resources/:id/comments", ctrl.CreateComment)
	r.POST("/api/reactions", ctrl.ToggleReaction)

	var comment model.ResourceComment
	w := doJSON(r, http.MethodPost, "/api/resources/"+resource.ID+"/comments", gin.H{"content": "Very useful"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decodeData(t, w, &comment)

	t.Run("both targets", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/reactions", gin.H{"commentId": comment.ID, "replyId": "r1", "type": "like"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no target", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/reactions", gin.H{"type": "like"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown comment", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/reactions", gin.H{"commentId": "missing", "type": "like"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("toggle on and off", func(t *testing.T) {
		var result service.ReactionResult
		w := doJSON(r, http.MethodPost, "/api/reactions", gin.H{"commentId": comment.ID, "type": "like"})
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &result)
		assert.True(t, result.Added)

		result = service.ReactionResult{}
		w = doJSON(r, http.MethodPost, "/api/reactions", gin.H{"commentId": comment.ID, "type": "like"})
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &result)
		assert.False(t, result.Added)
	})
}
