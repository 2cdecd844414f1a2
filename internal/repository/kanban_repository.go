package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KanbanRepository interface {
	CreateBoard(ctx context.Context, board *model.KanbanBoard) error
	FindBoard(ctx context.Context, id string, withCards bool) (*model.KanbanBoard, error)
	ListBoards(ctx context.Context, projectID string) ([]model.KanbanBoard, error)
	UpdateBoard(ctx context.Context, board *model.KanbanBoard) error
	DeleteBoardCascade(ctx context.Context, id string) error

	CreateColumn(ctx context.Context, column *model.KanbanColumn) error
	FindColumn(ctx context.Context, id string) (*model.KanbanColumn, error)
	ListColumns(ctx context.Context, boardID string) ([]model.KanbanColumn, error)
	UpdateColumn(ctx context.Context, column *model.KanbanColumn) error
	DeleteColumn(ctx context.Context, id string) error
	ReorderColumns(ctx context.Context, boardID string, columnIDs []string) error

	CreateCard(ctx context.Context, card *model.KanbanCard) error
	FindCard(ctx context.Context, id string) (*model.KanbanCard, error)
	CountCards(ctx context.Context, columnID string) (int64, error)
	UpdateCard(ctx context.Context, card *model.KanbanCard) error
	DeleteCard(ctx context.Context, id string) error
	MoveCard(ctx context.Context, card *model.KanbanCard, toColumnID string, position int) error
}

type GormKanbanRepository struct {
	DB *gorm.DB
}

var _ KanbanRepository = (*GormKanbanRepository)(nil)

func NewKanbanRepository(db *gorm.DB) *GormKanbanRepository {
	return &GormKanbanRepository{DB: db}
}

// CreateBoard 看板和初始列在同一事务中创建
func (r *GormKanbanRepository) CreateBoard(ctx context.Context, board *model.KanbanBoard) error {
	columns := board.Columns
	board.Columns = nil

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(board).Error; err != nil {
			return err
		}
		for i := range columns {
			columns[i].BoardID = board.ID
			columns[i].Position = i
		}
		if len(columns) > 0 {
			if err := tx.Omit(clause.Associations).Create(&columns).Error; err != nil {
				return err
			}
		}
		board.Columns = columns
		return nil
	})
}

func (r *GormKanbanRepository) FindBoard(ctx context.Context, id string, withCards bool) (*model.KanbanBoard, error) {
	query := r.DB.WithContext(ctx).Preload("Columns", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	if withCards {
		query = query.Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}

	var board model.KanbanBoard
	err := query.First(&board, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *GormKanbanRepository) ListBoards(ctx context.Context, projectID string) ([]model.KanbanBoard, error) {
	var boards []model.KanbanBoard
	err := r.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&boards).Error
	return boards, err
}

func (r *GormKanbanRepository) UpdateBoard(ctx context.Context, board *model.KanbanBoard) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(board).Error
}

func (r *GormKanbanRepository) DeleteBoardCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		columnIDs := tx.Model(&model.KanbanColumn{}).Select("id").Where("board_id = ?", id)
		if err := tx.Where("column_id IN (?)", columnIDs).Delete(&model.KanbanCard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.KanbanColumn{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.KanbanBoard{}, "id = ?", id).Error
	})
}

// CreateColumn 新列追加到最后
func (r *GormKanbanRepository) CreateColumn(ctx context.Context, column *model.KanbanColumn) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&model.KanbanColumn{}).
			Where("board_id = ?", column.BoardID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error; err != nil {
			return err
		}
		column.Position = last + 1
		return tx.Omit(clause.Associations).Create(column).Error
	})
}

func (r *GormKanbanRepository) FindColumn(ctx context.Context, id string) (*model.KanbanColumn, error) {
	var column model.KanbanColumn
	err := r.DB.WithContext(ctx).First(&column, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *GormKanbanRepository) ListColumns(ctx context.Context, boardID string) ([]model.KanbanColumn, error) {
	var columns []model.KanbanColumn
	err := r.DB.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&columns).Error
	return columns, err
}

func (r *GormKanbanRepository) UpdateColumn(ctx context.Context, column *model.KanbanColumn) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(column).Error
}

func (r *GormKanbanRepository) DeleteColumn(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.KanbanColumn{}, "id = ?", id).Error
}

// ReorderColumns 按 columnIDs 的顺序重写 position，调用方保证 ID 集合与看板一致
func (r *GormKanbanRepository) ReorderColumns(ctx context.Context, boardID string, columnIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range columnIDs {
			if err := tx.Model(&model.KanbanColumn{}).
				Where("id = ? AND board_id = ?", id, boardID).
				Updates(map[string]interface{}{"position": i}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateCard 新卡片放在列的末尾
func (r *GormKanbanRepository) CreateCard(ctx context.Context, card *model.KanbanCard) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&model.KanbanCard{}).
			Where("column_id = ?", card.ColumnID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error; err != nil {
			return err
		}
		card.Position = last + 1
		return tx.Create(card).Error
	})
}

func (r *GormKanbanRepository) FindCard(ctx context.Context, id string) (*model.KanbanCard, error) {
	var card model.KanbanCard
	err := r.DB.WithContext(ctx).First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *GormKanbanRepository) CountCards(ctx context.Context, columnID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.KanbanCard{}).
		Where("column_id = ?", columnID).
		Count(&count).Error
	return count, err
}

func (r *GormKanbanRepository) UpdateCard(ctx context.Context, card *model.KanbanCard) error {
	return r.DB.WithContext(ctx).Save(card).Error
}

func (r *GormKanbanRepository) DeleteCard(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.KanbanCard{}, "id = ?", id).Error
}

// MoveCard 把卡片插入目标列的 position 处，源列和目标列的 position 重新从 0 连续编号
func (r *GormKanbanRepository) MoveCard(ctx context.Context, card *model.KanbanCard, toColumnID string, position int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source []model.KanbanCard
		if err := tx.Where("column_id = ? AND id <> ?", card.ColumnID, card.ID).
			Order("position ASC").Order("created_at ASC").
			Find(&source).Error; err != nil {
			return err
		}

		target := source
		if toColumnID != card.ColumnID {
			target = nil
			if err := tx.Where("column_id = ?", toColumnID).
				Order("position ASC").Order("created_at ASC").
				Find(&target).Error; err != nil {
				return err
			}
		}

		if position < 0 {
			position = 0
		}
		if position > len(target) {
			position = len(target)
		}
		ordered := make([]model.KanbanCard, 0, len(target)+1)
		ordered = append(ordered, target[:position]...)
		ordered = append(ordered, *card)
		ordered = append(ordered, target[position:]...)

		if toColumnID != card.ColumnID {
			if err := renumberCards(tx, card.ColumnID, source); err != nil {
				return err
			}
		}
		if err := renumberCards(tx, toColumnID, ordered); err != nil {
			return err
		}

		card.ColumnID = toColumnID
		card.Position = position
		return nil
	})
}

func renumberCards(tx *gorm.DB, columnID string, cards []model.KanbanCard) error {
	for i, c := range cards {
		if err := tx.Model(&model.KanbanCard{}).
			Where("id = ?", c.ID).
			Updates(map[string]interface{}{"column_id": columnID, "position": i}).Error; err != nil {
			return err
		}
	}
	return nil
}
