package repository

import (
	"context"
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverableAppendAttachmentsAndFilter(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	client := testinfra.CreateUser(t, db, "client", model.Client)
	project := testinfra.CreateProject(t, db, client.ID, nil)

	repo := NewDeliverableRepository(db)
	deliverable := &model.Deliverable{
		ProjectID: project.ID, Title: "Logo", Status: model.DeliverablePending,
		Attachments: []model.DeliverableAttachment{{FileName: "brief.txt", URL: "/u/brief.txt"}},
	}
	require.NoError(t, repo.CreateWithAttachments(ctx, deliverable))
	require.NoError(t, repo.CreateWithAttachments(ctx, &model.Deliverable{
		ProjectID: project.ID, Title: "Palette", Status: model.DeliverablePending,
	}))

	deliverable.Status = model.DeliverableSubmitted
	require.NoError(t, repo.UpdateWithAttachments(ctx, deliverable, []model.DeliverableAttachment{
		{FileName: "logo.svg", URL: "/u/logo.svg"},
	}, false))

	found, err := repo.FindByID(ctx, deliverable.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DeliverableSubmitted, found.Status)
	assert.Len(t, found.Attachments, 2)

	submitted, err := repo.ListByProject(ctx, project.ID, model.DeliverableSubmitted)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, "Logo", submitted[0].Title)

	require.NoError(t, repo.DeleteCascade(ctx, deliverable.ID))
	var attachments int64
	require.NoError(t, db.Model(&model.DeliverableAttachment{}).Count(&attachments).Error)
	assert.Zero(t, attachments)
}
