package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context, includeInactive bool) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	SetActive(ctx context.Context, id string, active bool) error
	CountResources(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type GormCategoryRepository struct {
	DB *gorm.DB
}

var _ CategoryRepository = (*GormCategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{DB: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) List(ctx context.Context, includeInactive bool) ([]model.Category, error) {
	var categories []model.Category
	query := r.DB.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

// SetActive 用 map 更新，false 这类零值也会写入
func (r *GormCategoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.DB.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active}).
		Error
}

func (r *GormCategoryRepository) CountResources(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Resource{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}

// Delete 物理删除，删除后同名分类可以重新创建
func (r *GormCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(&model.Category{}, "id = ?", id).Error
}
