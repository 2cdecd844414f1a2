package model

import "time"

type KanbanBoard struct {
	UUIDBase
	ProjectID string         `gorm:"index;type:varchar(36);not null" json:"projectId"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Columns   []KanbanColumn `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
}

func (KanbanBoard) TableName() string {
	return "kanban_boards"
}

type KanbanColumn struct {
	UUIDBase
	BoardID  string       `gorm:"index;type:varchar(36);not null" json:"boardId"`
	Name     string       `gorm:"size:100;not null" json:"name"`
	Position int          `gorm:"default:0" json:"position"`
	WIPLimit int          `gorm:"column:wip_limit;default:0" json:"wipLimit"` // 0 表示不限制
	Cards    []KanbanCard `gorm:"foreignKey:ColumnID" json:"cards,omitempty"`
}

func (KanbanColumn) TableName() string {
	return "kanban_columns"
}

type KanbanCard struct {
	UUIDBase
	ColumnID    string     `gorm:"index;type:varchar(36);not null" json:"columnId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Position    int        `gorm:"default:0" json:"position"`
	AssigneeID  *uint      `gorm:"index" json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

func (KanbanCard) TableName() string {
	return "kanban_cards"
}
