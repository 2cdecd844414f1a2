package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
)

// ProjectFilter MemberID 为 0 表示不限成员（管理员视角）
type ProjectFilter struct {
	MemberID uint
	Status   model.ProjectStatus
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, filter ProjectFilter, offset, limit int) ([]model.Project, int64, error)
	Update(ctx context.Context, project *model.Project) error
	DeleteCascade(ctx context.Context, id string) error
}

type GormProjectRepository struct {
	DB *gorm.DB
}

var _ ProjectRepository = (*GormProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{DB: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.DB.WithContext(ctx).Create(project).Error
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.DB.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter, offset, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Project{})
	if filter.MemberID != 0 {
		query = query.Where("client_id = ? OR freelancer_id = ?", filter.MemberID, filter.MemberID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, total, err
}

func (r *GormProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.DB.WithContext(ctx).Save(project).Error
}

// DeleteCascade 删除项目及其交付物、文档、目录、看板、会议。
// 对象存储里的文件由 service 在事务提交后清理。
func (r *GormProjectRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deliverableIDs := tx.Model(&model.Deliverable{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("deliverable_id IN (?)", deliverableIDs).Delete(&model.DeliverableAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Deliverable{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Folder{}).Error; err != nil {
			return err
		}

		boardIDs := tx.Model(&model.KanbanBoard{}).Select("id").Where("project_id = ?", id)
		columnIDs := tx.Model(&model.KanbanColumn{}).Select("id").Where("board_id IN (?)", boardIDs)
		if err := tx.Where("column_id IN (?)", columnIDs).Delete(&model.KanbanCard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id IN (?)", boardIDs).Delete(&model.KanbanColumn{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.KanbanBoard{}).Error; err != nil {
			return err
		}

		meetingIDs := tx.Model(&model.Meeting{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("meeting_id IN (?)", meetingIDs).Delete(&model.MeetingAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Meeting{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Project{}, "id = ?", id).Error
	})
}
