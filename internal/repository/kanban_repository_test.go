package repository

import (
	"context"
	"testing"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, repo *GormKanbanRepository, projectID string) *model.KanbanBoard {
	t.Helper()
	board := &model.KanbanBoard{
		ProjectID: projectID,
		Name:      "Sprint 1",
		Columns:   []model.KanbanColumn{{Name: "To Do"}, {Name: "Done"}},
	}
	require.NoError(t, repo.CreateBoard(context.Background(), board))
	return board
}

func cardTitles(t *testing.T, repo *GormKanbanRepository, boardID string) map[string][]string {
	t.Helper()
	board, err := repo.FindBoard(context.Background(), boardID, true)
	require.NoError(t, err)
	titles := make(map[string][]string)
	for _, column := range board.Columns {
		titles[column.Name] = []string{}
		for _, card := range column.Cards {
			titles[column.Name] = append(titles[column.Name], card.Title)
		}
	}
	return titles
}

func TestKanbanMoveCardAcrossColumns(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	client := testinfra.CreateUser(t, db, "client", model.Client)
	project := testinfra.CreateProject(t, db, client.ID, nil)

	repo := NewKanbanRepository(db)
	board := newBoard(t, repo, project.ID)
	todo, done := board.Columns[0], board.Columns[1]

	cards := map[string]*model.KanbanCard{}
	for _, title := range []string{"a", "b", "c"} {
		card := &model.KanbanCard{ColumnID: todo.ID, Title: title}
		require.NoError(t, repo.CreateCard(ctx, card))
		cards[title] = card
	}
	shipped := &model.KanbanCard{ColumnID: done.ID, Title: "x"}
	require.NoError(t, repo.CreateCard(ctx, shipped))
	assert.Equal(t, 2, cards["c"].Position)

	require.NoError(t, repo.MoveCard(ctx, cards["a"], done.ID, 1))
	assert.Equal(t, done.ID, cards["a"].ColumnID)

	assert.Equal(t, map[string][]string{
		"To Do": {"b", "c"},
		"Done":  {"x", "a"},
	}, cardTitles(t, repo, board.ID))

	// 同列内移动
	require.NoError(t, repo.MoveCard(ctx, cards["c"], todo.ID, 0))
	assert.Equal(t, []string{"c", "b"}, cardTitles(t, repo, board.ID)["To Do"])
}

func TestKanbanColumnsAppendAndReorder(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	client := testinfra.CreateUser(t, db, "client", model.Client)
	project := testinfra.CreateProject(t, db, client.ID, nil)

	repo := NewKanbanRepository(db)
	board := newBoard(t, repo, project.ID)

	review := &model.KanbanColumn{BoardID: board.ID, Name: "Review"}
	require.NoError(t, repo.CreateColumn(ctx, review))
	assert.Equal(t, 2, review.Position)

	require.NoError(t, repo.ReorderColumns(ctx, board.ID, []string{review.ID, board.Columns[1].ID, board.Columns[0].ID}))

	columns, err := repo.ListColumns(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, []string{"Review", "Done", "To Do"}, []string{columns[0].Name, columns[1].Name, columns[2].Name})
}

func TestKanbanDeleteBoardCascade(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()
	client := testinfra.CreateUser(t, db, "client", model.Client)
	project := testinfra.CreateProject(t, db, client.ID, nil)

	repo := NewKanbanRepository(db)
	board := newBoard(t, repo, project.ID)
	require.NoError(t, repo.CreateCard(ctx, &model.KanbanCard{ColumnID: board.Columns[0].ID, Title: "a"}))

	require.NoError(t, repo.DeleteBoardCascade(ctx, board.ID))

	count, err := repo.CountCards(ctx, board.Columns[0].ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	columns, err := repo.ListColumns(ctx, board.ID)
	require.NoError(t, err)
	assert.Empty(t, columns)
}
