package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeliverableRepository interface {
	CreateWithAttachments(ctx context.Context, deliverable *model.Deliverable) error
	UpdateWithAttachments(ctx context.Context, deliverable *model.Deliverable, attachments []model.DeliverableAttachment, replace bool) error
	FindByID(ctx context.Context, id string) (*model.Deliverable, error)
	ListByProject(ctx context.Context, projectID string, status model.DeliverableStatus) ([]model.Deliverable, error)
	DeleteCascade(ctx context.Context, id string) error
}

type GormDeliverableRepository struct {
	DB *gorm.DB
}

var _ DeliverableRepository = (*GormDeliverableRepository)(nil)

func NewDeliverableRepository(db *gorm.DB) *GormDeliverableRepository {
	return &GormDeliverableRepository{DB: db}
}

func (r *GormDeliverableRepository) CreateWithAttachments(ctx context.Context, deliverable *model.Deliverable) error {
	attachments := deliverable.Attachments
	deliverable.Attachments = nil

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(deliverable).Error; err != nil {
			return err
		}
		for i := range attachments {
			attachments[i].DeliverableID = deliverable.ID
		}
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}
		deliverable.Attachments = attachments
		return nil
	})
}

// UpdateWithAttachments replace 为 true 时整体替换附件，否则追加（提交审核时附带的新文件）
func (r *GormDeliverableRepository) UpdateWithAttachments(ctx context.Context, deliverable *model.Deliverable, attachments []model.DeliverableAttachment, replace bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(deliverable).Error; err != nil {
			return err
		}
		if replace {
			if err := tx.Where("deliverable_id = ?", deliverable.ID).Delete(&model.DeliverableAttachment{}).Error; err != nil {
				return err
			}
		}
		for i := range attachments {
			attachments[i].ID = ""
			attachments[i].DeliverableID = deliverable.ID
		}
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormDeliverableRepository) FindByID(ctx context.Context, id string) (*model.Deliverable, error) {
	var deliverable model.Deliverable
	err := r.DB.WithContext(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&deliverable, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deliverable, nil
}

func (r *GormDeliverableRepository) ListByProject(ctx context.Context, projectID string, status model.DeliverableStatus) ([]model.Deliverable, error) {
	var deliverables []model.Deliverable
	query := r.DB.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.
		Preload("Attachments").
		Order("created_at DESC").
		Find(&deliverables).Error
	return deliverables, err
}

func (r *GormDeliverableRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deliverable_id = ?", id).Delete(&model.DeliverableAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Deliverable{}, "id = ?", id).Error
	})
}
