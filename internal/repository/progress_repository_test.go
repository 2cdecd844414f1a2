package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressWithTxRollsBackBothRows(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	user := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, user.ID, true)

	repo := NewProgressRepository(db)
	boom := errors.New("boom")

	err := repo.WithTx(ctx, func(tx ProgressRepository) error {
		if err := tx.SaveProgress(ctx, &model.ResourceProgress{
			UserID: user.ID, ResourceID: resource.ID, Percentage: 100, Completed: true, LastAccessedAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := tx.CreateCertificate(ctx, &model.Certificate{
			UserID: user.ID, ResourceID: resource.ID, CertificateNumber: "CERT-TEST", IssuedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	progress, err := repo.FindProgress(ctx, user.ID, resource.ID)
	require.NoError(t, err)
	assert.Nil(t, progress)

	certificate, err := repo.FindCertificate(ctx, user.ID, resource.ID)
	require.NoError(t, err)
	assert.Nil(t, certificate)
}

func TestCertificateUniquePerUserResource(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	user := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")
	resource := testinfra.CreateResource(t, db, category.ID, user.ID, true)

	repo := NewProgressRepository(db)
	require.NoError(t, repo.CreateCertificate(ctx, &model.Certificate{
		UserID: user.ID, ResourceID: resource.ID, CertificateNumber: "CERT-1", IssuedAt: time.Now(),
	}))
	err := repo.CreateCertificate(ctx, &model.Certificate{
		UserID: user.ID, ResourceID: resource.ID, CertificateNumber: "CERT-2", IssuedAt: time.Now(),
	})
	assert.Error(t, err)

	certificates, err := repo.ListCertificates(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, certificates, 1)
	require.NotNil(t, certificates[0].Resource)
}

func TestListProgress(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	user := testinfra.CreateUser(t, db, "alice", model.Freelancer)
	category := testinfra.CreateCategory(t, db, "Guides")

	repo := NewProgressRepository(db)
	for i := 0; i < 3; i++ {
		resource := testinfra.CreateResource(t, db, category.ID, user.ID, true)
		require.NoError(t, repo.SaveProgress(ctx, &model.ResourceProgress{
			UserID: user.ID, ResourceID: resource.ID, Percentage: 10 * (i + 1), LastAccessedAt: time.Now(),
		}))
	}

	list, total, err := repo.ListProgress(ctx, user.ID, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 2)
}
