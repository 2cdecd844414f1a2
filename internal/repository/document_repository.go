package repository

import (
	"context"
	"errors"

	"freelance_hub_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	CreateFolder(ctx context.Context, folder *model.Folder) error
	FindFolder(ctx context.Context, id string) (*model.Folder, error)
	ListFolders(ctx context.Context, projectID string) ([]model.Folder, error)
	UpdateFolder(ctx context.Context, folder *model.Folder) error
	DeleteFolder(ctx context.Context, id string) error
	FolderNameTaken(ctx context.Context, projectID string, parentID *string, name, excludeID string) (bool, error)
	CountFolderChildren(ctx context.Context, folderID string) (folders int64, documents int64, err error)

	CreateDocument(ctx context.Context, document *model.Document) error
	FindDocument(ctx context.Context, id string) (*model.Document, error)
	ListDocuments(ctx context.Context, projectID string, folderID *string) ([]model.Document, error)
	UpdateDocument(ctx context.Context, document *model.Document) error
	DeleteDocument(ctx context.Context, id string) error
	ObjectKeysByProject(ctx context.Context, projectID string) ([]string, error)
}

type GormDocumentRepository struct {
	DB *gorm.DB
}

var _ DocumentRepository = (*GormDocumentRepository)(nil)

func NewDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{DB: db}
}

func (r *GormDocumentRepository) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return r.DB.WithContext(ctx).Create(folder).Error
}

func (r *GormDocumentRepository) FindFolder(ctx context.Context, id string) (*model.Folder, error) {
	var folder model.Folder
	err := r.DB.WithContext(ctx).First(&folder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *GormDocumentRepository) ListFolders(ctx context.Context, projectID string) ([]model.Folder, error) {
	var folders []model.Folder
	err := r.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&folders).Error
	return folders, err
}

func (r *GormDocumentRepository) UpdateFolder(ctx context.Context, folder *model.Folder) error {
	return r.DB.WithContext(ctx).Save(folder).Error
}

func (r *GormDocumentRepository) DeleteFolder(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.Folder{}, "id = ?", id).Error
}

// FolderNameTaken 同一父目录下是否已有同名目录，excludeID 用于重命名时排除自身
func (r *GormDocumentRepository) FolderNameTaken(ctx context.Context, projectID string, parentID *string, name, excludeID string) (bool, error) {
	query := r.DB.WithContext(ctx).Model(&model.Folder{}).
		Where("project_id = ? AND name = ?", projectID, name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormDocumentRepository) CountFolderChildren(ctx context.Context, folderID string) (int64, int64, error) {
	var folders, documents int64
	if err := r.DB.WithContext(ctx).Model(&model.Folder{}).Where("parent_id = ?", folderID).Count(&folders).Error; err != nil {
		return 0, 0, err
	}
	if err := r.DB.WithContext(ctx).Model(&model.Document{}).Where("folder_id = ?", folderID).Count(&documents).Error; err != nil {
		return 0, 0, err
	}
	return folders, documents, nil
}

func (r *GormDocumentRepository) CreateDocument(ctx context.Context, document *model.Document) error {
	return r.DB.WithContext(ctx).Create(document).Error
}

func (r *GormDocumentRepository) FindDocument(ctx context.Context, id string) (*model.Document, error) {
	var document model.Document
	err := r.DB.WithContext(ctx).First(&document, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// ListDocuments folderID 为 nil 时返回项目下全部文档
func (r *GormDocumentRepository) ListDocuments(ctx context.Context, projectID string, folderID *string) ([]model.Document, error) {
	var documents []model.Document
	query := r.DB.WithContext(ctx).Where("project_id = ?", projectID)
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	}
	err := query.Order("created_at DESC").Find(&documents).Error
	return documents, err
}

func (r *GormDocumentRepository) UpdateDocument(ctx context.Context, document *model.Document) error {
	return r.DB.WithContext(ctx).Save(document).Error
}

func (r *GormDocumentRepository) DeleteDocument(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.Document{}, "id = ?", id).Error
}

func (r *GormDocumentRepository) ObjectKeysByProject(ctx context.Context, projectID string) ([]string, error) {
	var keys []string
	err := r.DB.WithContext(ctx).Model(&model.Document{}).
		Where("project_id = ?", projectID).
		Pluck("object_key", &keys).Error
	return keys, err
}
