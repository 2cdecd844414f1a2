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

func intPtr(v int) *int { return &v }

func TestUpdateProgressAccumulatesAndIssuesCertificateOnce(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	learner := testinfra.CreateUser(t, db, "learner", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, learner.ID, true)

	svc := NewProgressService(repository.NewProgressRepository(db), repository.NewResourceRepository(db))
	svc.Now = fixedClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	identity := testinfra.Identity(learner)

	first, err := svc.UpdateProgress(ctx, identity, resource.ID, UpdateProgressRequest{Percentage: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, 40, first.Progress.Percentage)
	assert.False(t, first.Progress.Completed)
	assert.Nil(t, first.Certificate)

	second, err := svc.UpdateProgress(ctx, identity, resource.ID, UpdateProgressRequest{Percentage: intPtr(70)})
	require.NoError(t, err)
	assert.Equal(t, 100, second.Progress.Percentage)
	assert.True(t, second.Progress.Completed)
	require.NotNil(t, second.Certificate)
	assert.Regexp(t, `^CERT-20250314-[0-9A-F]{8}$`, second.Certificate.CertificateNumber)
	assert.Equal(t, first.Progress.ID, second.Progress.ID)

	third, err := svc.UpdateProgress(ctx, identity, resource.ID, UpdateProgressRequest{Percentage: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 100, third.Progress.Percentage)
	assert.Nil(t, third.Certificate)

	certificates, err := svc.ListCertificates(ctx, identity)
	require.NoError(t, err)
	assert.Len(t, certificates, 1)

	stored, err := svc.GetProgress(ctx, identity, resource.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.Completed)
}

func TestUpdateProgressRejectsOutOfRange(t *testing.T) {
	db := testinfra.NewTestDB(t)
	user := testinfra.CreateUser(t, db, "learner", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, user.ID, true)
	svc := NewProgressService(repository.NewProgressRepository(db), repository.NewResourceRepository(db))

	for _, req := range []UpdateProgressRequest{{}, {Percentage: intPtr(-1)}, {Percentage: intPtr(101)}} {
		_, err := svc.UpdateProgress(context.Background(), testinfra.Identity(user), resource.ID, req)
		assert.True(t, util.IsBadRequest(err), "request %+v", req)
	}
}

func TestUpdateProgressUnknownResource(t *testing.T) {
	db := testinfra.NewTestDB(t)
	user := testinfra.CreateUser(t, db, "learner", model.Freelancer)
	svc := NewProgressService(repository.NewProgressRepository(db), repository.NewResourceRepository(db))

	_, err := svc.UpdateProgress(context.Background(), testinfra.Identity(user), "missing", UpdateProgressRequest{Percentage: intPtr(10)})
	assert.True(t, util.IsNotFound(err))
}

func TestGetCertificateHiddenFromOthers(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	owner := testinfra.CreateUser(t, db, "owner", model.Freelancer)
	other := testinfra.CreateUser(t, db, "other", model.Client)
	admin := testinfra.CreateUser(t, db, "admin", model.Admin)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, owner.ID, true)

	svc := NewProgressService(repository.NewProgressRepository(db), repository.NewResourceRepository(db))
	result, err := svc.UpdateProgress(ctx, testinfra.Identity(owner), resource.ID, UpdateProgressRequest{Percentage: intPtr(100)})
	require.NoError(t, err)
	require.NotNil(t, result.Certificate)

	_, err = svc.GetCertificate(ctx, testinfra.Identity(other), result.Certificate.ID)
	assert.True(t, util.IsNotFound(err))

	certificate, err := svc.GetCertificate(ctx, testinfra.Identity(admin), result.Certificate.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, certificate.UserID)
}

func TestUpdateProgressZeroDeltaRefreshesLastAccessed(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	learner := testinfra.CreateUser(t, db, "learner", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, learner.ID, true)

	svc := NewProgressService(repository.NewProgressRepository(db), repository.NewResourceRepository(db))
	identity := testinfra.Identity(learner)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	svc.Now = fixedClock(start)
	result, err := svc.UpdateProgress(ctx, identity, resource.ID, UpdateProgressRequest{Percentage: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Progress.Percentage)
	assert.False(t, result.Progress.Completed)

	later := start.Add(time.Hour)
	svc.Now = fixedClock(later)
	result, err = svc.UpdateProgress(ctx, identity, resource.ID, UpdateProgressRequest{Percentage: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Progress.Percentage)
	assert.Nil(t, result.Certificate)

	progress, err := svc.GetProgress(ctx, identity, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Percentage)
	assert.True(t, progress.LastAccessedAt.Equal(later), "lastAccessedAt = %v", progress.LastAccessedAt)
}
