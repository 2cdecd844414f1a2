package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository 学习进度和证书。
// WithTx 把事务内的仓储交给 fn，fn 返回错误时整体回滚。
type ProgressRepository interface {
	WithTx(ctx context.Context, fn func(repo ProgressRepository) error) error
	FindProgress(ctx context.Context, userID uint, resourceID string) (*model.ResourceProgress, error)
	SaveProgress(ctx context.Context, progress *model.ResourceProgress) error
	ListProgress(ctx context.Context, userID uint, offset, limit int) ([]model.ResourceProgress, int64, error)
	FindCertificate(ctx context.Context, userID uint, resourceID string) (*model.Certificate, error)
	FindCertificateByID(ctx context.Context, id string) (*model.Certificate, error)
	CreateCertificate(ctx context.Context, certificate *model.Certificate) error
	ListCertificates(ctx context.Context, userID uint) ([]model.Certificate, error)
}

type GormProgressRepository struct {
	DB *gorm.DB
}

var _ ProgressRepository = (*GormProgressRepository)(nil)

func NewProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{DB: db}
}

func (r *GormProgressRepository) WithTx(ctx context.Context, fn func(repo ProgressRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormProgressRepository{DB: tx})
	})
}

// FindProgress 不存在时返回 (nil, nil)。
// MySQL 下加 FOR UPDATE，同一 (user, resource) 的并发累加在事务内串行。
func (r *GormProgressRepository) FindProgress(ctx context.Context, userID uint, resourceID string) (*model.ResourceProgress, error) {
	query := r.DB.WithContext(ctx)
	if query.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var progress model.ResourceProgress
	err := query.Where("user_id = ? AND resource_id = ?", userID, resourceID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *GormProgressRepository) SaveProgress(ctx context.Context, progress *model.ResourceProgress) error {
	return r.DB.WithContext(ctx).Save(progress).Error
}

func (r *GormProgressRepository) ListProgress(ctx context.Context, userID uint, offset, limit int) ([]model.ResourceProgress, int64, error) {
	var list []model.ResourceProgress
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.ResourceProgress{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("last_accessed_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

func (r *GormProgressRepository) FindCertificate(ctx context.Context, userID uint, resourceID string) (*model.Certificate, error) {
	var certificate model.Certificate
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		First(&certificate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

func (r *GormProgressRepository) FindCertificateByID(ctx context.Context, id string) (*model.Certificate, error) {
	var certificate model.Certificate
	err := r.DB.WithContext(ctx).Preload("Resource").First(&certificate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

func (r *GormProgressRepository) CreateCertificate(ctx context.Context, certificate *model.Certificate) error {
	return r.DB.WithContext(ctx).Create(certificate).Error
}

func (r *GormProgressRepository) ListCertificates(ctx context.Context, userID uint) ([]model.Certificate, error) {
	var certificates []model.Certificate
	err := r.DB.WithContext(ctx).
		Preload("Resource").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certificates).Error
	return certificates, err
}
