package repository

import (
	"context"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
)

// EngagementRepository 收藏和置顶
type EngagementRepository interface {
	ToggleFavorite(ctx context.Context, userID uint, resourceID string) (bool, error)
	TogglePin(ctx context.Context, userID uint, resourceID string) (bool, error)
	ListFavorites(ctx context.Context, userID uint) ([]model.Favorite, error)
	ListPins(ctx context.Context, userID uint) ([]model.Pin, error)
}

type GormEngagementRepository struct {
	DB *gorm.DB
}

var _ EngagementRepository = (*GormEngagementRepository)(nil)

func NewEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{DB: db}
}

func (r *GormEngagementRepository) ToggleFavorite(ctx context.Context, userID uint, resourceID string) (bool, error) {
	return toggle(ctx, r.DB,
		map[string]interface{}{"user_id": userID, "resource_id": resourceID},
		&model.Favorite{UserID: userID, ResourceID: resourceID},
	)
}

func (r *GormEngagementRepository) TogglePin(ctx context.Context, userID uint, resourceID string) (bool, error) {
	return toggle(ctx, r.DB,
		map[string]interface{}{"user_id": userID, "resource_id": resourceID},
		&model.Pin{UserID: userID, ResourceID: resourceID},
	)
}

func (r *GormEngagementRepository) ListFavorites(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.DB.WithContext(ctx).
		Preload("Resource").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *GormEngagementRepository) ListPins(ctx context.Context, userID uint) ([]model.Pin, error) {
	var pins []model.Pin
	err := r.DB.WithContext(ctx).
		Preload("Resource").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pins).Error
	return pins, err
}
