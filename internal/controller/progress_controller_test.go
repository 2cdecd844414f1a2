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

func TestUpdateProgressAccumulatesAndIssuesOneCertificate(t *testing.T) {
	db := testinfra.NewTestDB(t)
	admin := testinfra.CreateUser(t, db, "admin", model.Admin)
	learner := testinfra.CreateUser(t, db, "learner", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, admin.ID, true)

	ctrl := NewProgressController(service.NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewResourceRepository(db),
	))
	r := gin.New()
	r.Use(asUser(learner))
	r.PATCH("/api/resources/:id/progress", ctrl.UpdateProgress)
	r.GET("/api/certificates", ctrl.ListCertificates)
	path := "/api/resources/" + resource.ID + "/progress"

	var result service.ProgressUpdateResult
	w := doJSON(r, http.MethodPatch, path, gin.H{"percentage": 40})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &result)
	assert.Equal(t, 40, result.Progress.Percentage)
	assert.Nil(t, result.Certificate)

	result = service.ProgressUpdateResult{}
	w = doJSON(r, http.MethodPatch, path, gin.H{"percentage": 70})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &result)
	assert.Equal(t, 100, result.Progress.Percentage)
	assert.True(t, result.Progress.Completed)
	require.NotNil(t, result.Certificate)

	result = service.ProgressUpdateResult{}
	w = doJSON(r, http.MethodPatch, path, gin.H{"percentage": 10})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &result)
	assert.Nil(t, result.Certificate)

	var certificates []model.Certificate
	w = doJSON(r, http.MethodGet, "/api/certificates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &certificates)
	assert.Len(t, certificates, 1)
}

func TestUpdateProgressRejectsBadInput(t *testing.T) {
	db := testinfra.NewTestDB(t)
	learner := testinfra.CreateUser(t, db, "learner", model.Freelancer)
	ctrl := NewProgressController(service.NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewResourceRepository(db),
	))

	r := gin.New()
	r.PATCH("/anon/:id/progress", ctrl.UpdateProgress)
	authed := r.Group("/")
	authed.Use(asUser(learner))
	authed.PATCH("/api/resources/:id/progress", ctrl.UpdateProgress)

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPatch, "/anon/x/progress", gin.H{"percentage": 10}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPatch, "/api/resources/x/progress", gin.H{"percentage": 150}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPatch, "/api/resources/x/progress", gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPatch, "/api/resources/missing/progress", gin.H{"percentage": 10}).Code)
}
