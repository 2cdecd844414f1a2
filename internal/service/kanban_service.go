package service

import (
	"context"
	"strings"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
)

// 未指定列时新看板的默认列
var DefaultKanbanColumns = []string{"To Do", "In Progress", "Done"}

type CreateBoardRequest struct {
	Name    string   `json:"name" binding:"required,max=255"`
	Columns []string `json:"columns" binding:"omitempty,dive,required,max=100"`
}

type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CreateColumnRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	WIPLimit int    `json:"wipLimit" binding:"gte=0"`
}

type UpdateColumnRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	WIPLimit *int    `json:"wipLimit" binding:"omitempty,gte=0"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"columnIds" binding:"required,min=1,dive,required"`
}

type CreateCardRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description" binding:"max=5000"`
	AssigneeID  *uint      `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	AssigneeID  *uint      `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

type MoveCardRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
	Position *int   `json:"position" binding:"required,gte=0"`
}

type KanbanService struct {
	projectAccess
	Repo repository.KanbanRepository
}

func NewKanbanService(repo repository.KanbanRepository, projects repository.ProjectRepository) *KanbanService {
	return &KanbanService{
		projectAccess: projectAccess{projects: projects},
		Repo:          repo,
	}
}

func (s *KanbanService) CreateBoard(ctx context.Context, identity model.Identity, projectID string, req CreateBoardRequest) (*model.KanbanBoard, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}

	names := req.Columns
	if len(names) == 0 {
		names = DefaultKanbanColumns
	}
	columns := make([]model.KanbanColumn, 0, len(names))
	for _, name := range names {
		columns = append(columns, model.KanbanColumn{Name: strings.TrimSpace(name)})
	}

	board := &model.KanbanBoard{
		ProjectID: projectID,
		Name:      strings.TrimSpace(req.Name),
		Columns:   columns,
	}
	if err := s.Repo.CreateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *KanbanService) ListBoards(ctx context.Context, identity model.Identity, projectID string) ([]model.KanbanBoard, error) {
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.Repo.ListBoards(ctx, projectID)
}

// GetBoard 返回按 position 排好序的列和卡片
func (s *KanbanService) GetBoard(ctx context.Context, identity model.Identity, id string) (*model.KanbanBoard, error) {
	board, err := s.boardFor(ctx, identity, id, true)
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (s *KanbanService) UpdateBoard(ctx context.Context, identity model.Identity, id string, req UpdateBoardRequest) (*model.KanbanBoard, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	board, err := s.boardFor(ctx, identity, id, false)
	if err != nil {
		return nil, err
	}

	board.Name = strings.TrimSpace(req.Name)
	if err := s.Repo.UpdateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *KanbanService) DeleteBoard(ctx context.Context, identity model.Identity, id string) error {
	if _, err := s.boardFor(ctx, identity, id, false); err != nil {
		return err
	}
	return s.Repo.DeleteBoardCascade(ctx, id)
}

func (s *KanbanService) CreateColumn(ctx context.Context, identity model.Identity, boardID string, req CreateColumnRequest) (*model.KanbanColumn, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.boardFor(ctx, identity, boardID, false); err != nil {
		return nil, err
	}

	column := &model.KanbanColumn{
		BoardID:  boardID,
		Name:     strings.TrimSpace(req.Name),
		WIPLimit: req.WIPLimit,
	}
	if err := s.Repo.CreateColumn(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumn 调低 WIP 上限不会影响已有卡片，只限制之后移入的卡片
func (s *KanbanService) UpdateColumn(ctx context.Context, identity model.Identity, id string, req UpdateColumnRequest) (*model.KanbanColumn, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	column, err := s.columnFor(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		column.Name = strings.TrimSpace(*req.Name)
	}
	if req.WIPLimit != nil {
		column.WIPLimit = *req.WIPLimit
	}
	if err := s.Repo.UpdateColumn(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *KanbanService) DeleteColumn(ctx context.Context, identity model.Identity, id string) error {
	if _, err := s.columnFor(ctx, identity, id); err != nil {
		return err
	}
	count, err := s.Repo.CountCards(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.BadRequestf("cannot delete column with %d cards, move them first", count)
	}
	return s.Repo.DeleteColumn(ctx, id)
}

// ReorderColumns columnIds 必须恰好是看板现有的全部列
func (s *KanbanService) ReorderColumns(ctx context.Context, identity model.Identity, boardID string, req ReorderColumnsRequest) ([]model.KanbanColumn, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.boardFor(ctx, identity, boardID, false); err != nil {
		return nil, err
	}

	columns, err := s.Repo.ListColumns(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !sameIDSet(columns, req.ColumnIDs) {
		return nil, util.BadRequestf("columnIds must list every column of the board exactly once")
	}

	if err := s.Repo.ReorderColumns(ctx, boardID, req.ColumnIDs); err != nil {
		return nil, err
	}
	return s.Repo.ListColumns(ctx, boardID)
}

func (s *KanbanService) CreateCard(ctx context.Context, identity model.Identity, columnID string, req CreateCardRequest) (*model.KanbanCard, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	column, err := s.columnFor(ctx, identity, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAssignee(ctx, column.BoardID, req.AssigneeID); err != nil {
		return nil, err
	}
	if err := s.ensureCapacity(ctx, column); err != nil {
		return nil, err
	}

	card := &model.KanbanCard{
		ColumnID:    columnID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if err := s.Repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *KanbanService) UpdateCard(ctx context.Context, identity model.Identity, id string, req UpdateCardRequest) (*model.KanbanCard, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	card, column, err := s.cardFor(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		card.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.AssigneeID != nil {
		if err := s.ensureAssignee(ctx, column.BoardID, req.AssigneeID); err != nil {
			return nil, err
		}
		card.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}

	if err := s.Repo.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *KanbanService) DeleteCard(ctx context.Context, identity model.Identity, id string) error {
	if _, _, err := s.cardFor(ctx, identity, id); err != nil {
		return err
	}
	return s.Repo.DeleteCard(ctx, id)
}

// MoveCard 目标列必须在同一看板；跨列移动时检查目标列的 WIP 上限
func (s *KanbanService) MoveCard(ctx context.Context, identity model.Identity, id string, req MoveCardRequest) (*model.KanbanCard, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	card, source, err := s.cardFor(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	target := source
	if req.ColumnID != source.ID {
		target, err = s.Repo.FindColumn(ctx, req.ColumnID)
		if err != nil {
			return nil, err
		}
		if target == nil || target.BoardID != source.BoardID {
			return nil, util.BadRequestf("target column must belong to the same board")
		}
		if err := s.ensureCapacity(ctx, target); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.MoveCard(ctx, card, target.ID, *req.Position); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *KanbanService) ensureCapacity(ctx context.Context, column *model.KanbanColumn) error {
	if column.WIPLimit <= 0 {
		return nil
	}
	count, err := s.Repo.CountCards(ctx, column.ID)
	if err != nil {
		return err
	}
	if count >= int64(column.WIPLimit) {
		return util.BadRequestf("column %q has reached its WIP limit of %d", column.Name, column.WIPLimit)
	}
	return nil
}

// ensureAssignee 负责人必须是项目成员
func (s *KanbanService) ensureAssignee(ctx context.Context, boardID string, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}
	board, err := s.Repo.FindBoard(ctx, boardID, false)
	if err != nil {
		return err
	}
	if board == nil {
		return util.NotFound("Board")
	}
	project, err := s.projects.FindByID(ctx, board.ProjectID)
	if err != nil {
		return err
	}
	if project == nil || !project.IsMember(*assigneeID) {
		return util.BadRequestf("assignee %d is not a member of this project", *assigneeID)
	}
	return nil
}

func (s *KanbanService) boardFor(ctx context.Context, identity model.Identity, id string, withCards bool) (*model.KanbanBoard, error) {
	board, err := s.Repo.FindBoard(ctx, id, withCards)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, util.NotFound("Board")
	}
	if _, err := s.member(ctx, identity, board.ProjectID); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *KanbanService) columnFor(ctx context.Context, identity model.Identity, id string) (*model.KanbanColumn, error) {
	column, err := s.Repo.FindColumn(ctx, id)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, util.NotFound("Column")
	}
	if _, err := s.boardFor(ctx, identity, column.BoardID, false); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *KanbanService) cardFor(ctx context.Context, identity model.Identity, id string) (*model.KanbanCard, *model.KanbanColumn, error) {
	card, err := s.Repo.FindCard(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if card == nil {
		return nil, nil, util.NotFound("Card")
	}
	column, err := s.columnFor(ctx, identity, card.ColumnID)
	if err != nil {
		return nil, nil, err
	}
	return card, column, nil
}

func sameIDSet(columns []model.KanbanColumn, ids []string) bool {
	if len(columns) != len(ids) {
		return false
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c.ID] = false
	}
	for _, id := range ids {
		used, ok := seen[id]
		if !ok || used {
			return false
		}
		seen[id] = true
	}
	return true
}
