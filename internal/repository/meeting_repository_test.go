package repository

import (
	"context"
	"testing"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingReplaceAttendeesAndUpcoming(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	client := testinfra.CreateUser(t, db, "client", model.Client)
	freelancer := testinfra.CreateUser(t, db, "freelancer", model.Freelancer)
	project := testinfra.CreateProject(t, db, client.ID, &freelancer.ID)

	repo := NewMeetingRepository(db)
	now := time.Now()

	past := &model.Meeting{
		ProjectID: project.ID, OrganizerID: client.ID, Title: "Retro", Status: model.MeetingCompleted,
		StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour),
	}
	require.NoError(t, repo.CreateWithAttendees(ctx, past))

	next := &model.Meeting{
		ProjectID: project.ID, OrganizerID: client.ID, Title: "Planning", Status: model.MeetingScheduled,
		StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour),
		Attendees: []model.MeetingAttendee{{UserID: client.ID}},
	}
	require.NoError(t, repo.CreateWithAttendees(ctx, next))

	next.Attendees = []model.MeetingAttendee{{UserID: client.ID}, {UserID: freelancer.ID}}
	require.NoError(t, repo.UpdateWithAttendees(ctx, next, true))

	found, err := repo.FindByID(ctx, next.ID)
	require.NoError(t, err)
	assert.Len(t, found.Attendees, 2)

	all, err := repo.ListByProject(ctx, project.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := repo.ListByProject(ctx, project.ID, &now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Planning", upcoming[0].Title)
}
