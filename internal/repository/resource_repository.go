package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResourceFilter 资源列表的筛选条件，空字段表示不过滤
type ResourceFilter struct {
	CategoryID         string
	Type               model.ResourceType
	Search             string
	IncludeUnpublished bool
}

type ResourceRepository interface {
	CreateWithAttachments(ctx context.Context, resource *model.Resource) error
	UpdateWithAttachments(ctx context.Context, resource *model.Resource, attachments []model.ResourceAttachment, replace bool) error
	AddAttachment(ctx context.Context, attachment *model.ResourceAttachment) error
	FindByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context, filter ResourceFilter, offset, limit int) ([]model.Resource, int64, error)
	IncrementViewCount(ctx context.Context, id string) error
	DeleteCascade(ctx context.Context, id string) error
}

type GormResourceRepository struct {
	DB *gorm.DB
}

var _ ResourceRepository = (*GormResourceRepository)(nil)

func NewResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{DB: db}
}

// CreateWithAttachments 资源和附件在同一事务中写入
func (r *GormResourceRepository) CreateWithAttachments(ctx context.Context, resource *model.Resource) error {
	attachments := resource.Attachments
	resource.Attachments = nil

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(resource).Error; err != nil {
			return err
		}
		for i := range attachments {
			attachments[i].ResourceID = resource.ID
		}
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}
		resource.Attachments = attachments
		return nil
	})
}

// UpdateWithAttachments replace 为 true 时整体替换附件，否则追加
func (r *GormResourceRepository) UpdateWithAttachments(ctx context.Context, resource *model.Resource, attachments []model.ResourceAttachment, replace bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(resource).Error; err != nil {
			return err
		}
		if replace {
			if err := tx.Where("resource_id = ?", resource.ID).Delete(&model.ResourceAttachment{}).Error; err != nil {
				return err
			}
		}
		for i := range attachments {
			attachments[i].ID = ""
			attachments[i].ResourceID = resource.ID
		}
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormResourceRepository) AddAttachment(ctx context.Context, attachment *model.ResourceAttachment) error {
	return r.DB.WithContext(ctx).Create(attachment).Error
}

func (r *GormResourceRepository) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	var resource model.Resource
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&resource, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *GormResourceRepository) List(ctx context.Context, filter ResourceFilter, offset, limit int) ([]model.Resource, int64, error) {
	var resources []model.Resource
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Resource{})
	if !filter.IncludeUnpublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&resources).Error
	return resources, total, err
}

func (r *GormResourceRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.Resource{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}

// DeleteCascade 删除资源及其附件、评论、回复、表情、收藏、置顶。
// 学习进度和证书保留，证书是用户已获得的凭证。
func (r *GormResourceRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.ResourceComment{}).Select("id").Where("resource_id = ?", id)
		replyIDs := tx.Model(&model.CommentReply{}).Select("id").Where("comment_id IN (?)", commentIDs)

		// 1. 表情（物理删除）
		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&model.ReplyReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&model.CommentReaction{}).Error; err != nil {
			return err
		}
		// 2. 回复和评论
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&model.CommentReply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&model.ResourceComment{}).Error; err != nil {
			return err
		}
		// 3. 收藏和置顶
		if err := tx.Where("resource_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&model.Pin{}).Error; err != nil {
			return err
		}
		// 4. 附件和资源本身
		if err := tx.Where("resource_id = ?", id).Delete(&model.ResourceAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Resource{}, "id = ?", id).Error
	})
}
