package service

import (
	"context"
	"testing"

	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKanbanService(f projectFixture) *KanbanService {
	return NewKanbanService(repository.NewKanbanRepository(f.db), f.projects)
}

func TestCreateBoardDefaultColumns(t *testing.T) {
	f := newProjectFixture(t)
	svc := newKanbanService(f)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, f.client, f.project.ID, CreateBoardRequest{Name: "Sprint 1"})
	require.NoError(t, err)
	require.Len(t, board.Columns, 3)
	for i, name := range DefaultKanbanColumns {
		assert.Equal(t, name, board.Columns[i].Name)
		assert.Equal(t, i, board.Columns[i].Position)
	}

	custom, err := svc.CreateBoard(ctx, f.freelancer, f.project.ID, CreateBoardRequest{Name: "Bugs", Columns: []string{"New", "Fixed"}})
	require.NoError(t, err)
	assert.Len(t, custom.Columns, 2)

	_, err = svc.CreateBoard(ctx, f.outsider, f.project.ID, CreateBoardRequest{Name: "Nope"})
	assert.True(t, util.IsBadRequest(err))
}

func TestMoveCardRespectsWIPLimit(t *testing.T) {
	f := newProjectFixture(t)
	svc := newKanbanService(f)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, f.client, f.project.ID, CreateBoardRequest{Name: "Sprint"})
	require.NoError(t, err)
	todo, doing := board.Columns[0], board.Columns[1]

	limit := 1
	_, err = svc.UpdateColumn(ctx, f.client, doing.ID, UpdateColumnRequest{WIPLimit: &limit})
	require.NoError(t, err)

	first, err := svc.CreateCard(ctx, f.client, todo.ID, CreateCardRequest{Title: "Hero section"})
	require.NoError(t, err)
	second, err := svc.CreateCard(ctx, f.client, todo.ID, CreateCardRequest{Title: "Footer"})
	require.NoError(t, err)

	zero := 0
	moved, err := svc.MoveCard(ctx, f.freelancer, first.ID, MoveCardRequest{ColumnID: doing.ID, Position: &zero})
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ColumnID)

	_, err = svc.MoveCard(ctx, f.freelancer, second.ID, MoveCardRequest{ColumnID: doing.ID, Position: &zero})
	require.Error(t, err)
	assert.True(t, util.IsBadRequest(err))
	assert.Contains(t, err.Error(), "WIP limit")

	_, err = svc.CreateCard(ctx, f.client, doing.ID, CreateCardRequest{Title: "Overflow"})
	assert.True(t, util.IsBadRequest(err))

	// 同列内移动不受 WIP 限制
	_, err = svc.MoveCard(ctx, f.freelancer, first.ID, MoveCardRequest{ColumnID: doing.ID, Position: &zero})
	require.NoError(t, err)

	loaded, err := svc.GetBoard(ctx, f.client, board.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Columns[0].Cards, 1)
	assert.Equal(t, second.ID, loaded.Columns[0].Cards[0].ID)
	assert.Equal(t, 0, loaded.Columns[0].Cards[0].Position)
}

func TestMoveCardRejectsOtherBoard(t *testing.T) {
	f := newProjectFixture(t)
	svc := newKanbanService(f)
	ctx := context.Background()

	a, err := svc.CreateBoard(ctx, f.client, f.project.ID, CreateBoardRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateBoard(ctx, f.client, f.project.ID, CreateBoardRequest{Name: "B"})
	require.NoError(t, err)

	card, err := svc.CreateCard(ctx, f.client, a.Columns[0].ID, CreateCardRequest{Title: "Task"})
	require.NoError(t, err)

	zero := 0
	_, err = svc.MoveCard(ctx, f.client, card.ID, MoveCardRequest{ColumnID: b.Columns[0].ID, Position: &zero})
	assert.True(t, util.IsBadRequest(err))
}

func TestColumnDeleteAndReorder(t *testing.T) {
	f := newProjectFixture(t)
	svc := newKanbanService(f)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, f.client, f.project.ID, CreateBoardRequest{Name: "Sprint"})
	require.NoError(t, err)
	todo, doing, done := board.Columns[0], board.Columns[1], board.Columns[2]

	card, err := svc.CreateCard(ctx, f.client, todo.ID, CreateCardRequest{Title: "Task", AssigneeID: &f.freelancer.UserID})
	require.NoError(t, err)
	assert.True(t, util.IsBadRequest(svc.DeleteColumn(ctx, f.client, todo.ID)))

	_, err = svc.UpdateCard(ctx, f.client, card.ID, UpdateCardRequest{AssigneeID: &f.outsider.UserID})
	assert.True(t, util.IsBadRequest(err))

	_, err = svc.ReorderColumns(ctx, f.client, board.ID, ReorderColumnsRequest{ColumnIDs: []string{done.ID, todo.ID}})
	assert.True(t, util.IsBadRequest(err))
	_, err = svc.ReorderColumns(ctx, f.client, board.ID, ReorderColumnsRequest{ColumnIDs: []string{done.ID, todo.ID, todo.ID}})
	assert.True(t, util.IsBadRequest(err))

	columns, err := svc.ReorderColumns(ctx, f.client, board.ID, ReorderColumnsRequest{ColumnIDs: []string{done.ID, doing.ID, todo.ID}})
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, done.ID, columns[0].ID)
	assert.Equal(t, todo.ID, columns[2].ID)

	require.NoError(t, svc.DeleteCard(ctx, f.client, card.ID))
	require.NoError(t, svc.DeleteColumn(ctx, f.client, todo.ID))

	require.NoError(t, svc.DeleteBoard(ctx, f.client, board.ID))
	_, err = svc.GetBoard(ctx, f.client, board.ID)
	assert.True(t, util.IsNotFound(err))
}
