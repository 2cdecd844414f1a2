package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
)

// 目录最大嵌套深度，移动目录时沿父链向上查找
const maxFolderDepth = 64

type CreateFolderRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	ParentID *string `json:"parentId"`
}

// UpdateFolderRequest MoveToRoot 为 true 时移动到根目录，忽略 ParentID
type UpdateFolderRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=255"`
	ParentID   *string `json:"parentId"`
	MoveToRoot bool    `json:"moveToRoot"`
}

type UpdateDocumentRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=255"`
	FolderID   *string `json:"folderId"`
	MoveToRoot bool    `json:"moveToRoot"`
}

type DocumentService struct {
	projectAccess
	Repo    repository.DocumentRepository
	Storage *StorageService
}

func NewDocumentService(repo repository.DocumentRepository, projects repository.ProjectRepository, storage *StorageService) *DocumentService {
	return &DocumentService{
		projectAccess: projectAccess{projects: projects},
		Repo:          repo,
		Storage:       storage,
	}
}

func (s *DocumentService) CreateFolder(ctx context.Context, identity model.Identity, projectID string, req CreateFolderRequest) (*model.Folder, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}

	parentID := normalizeID(req.ParentID)
	if parentID != nil {
		if _, err := s.folderInProject(ctx, *parentID, projectID); err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureFolderNameFree(ctx, projectID, parentID, name, ""); err != nil {
		return nil, err
	}

	folder := &model.Folder{
		ProjectID: projectID,
		ParentID:  parentID,
		Name:      name,
		CreatorID: identity.UserID,
	}
	if err := s.Repo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *DocumentService) ListFolders(ctx context.Context, identity model.Identity, projectID string) ([]model.Folder, error) {
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.Repo.ListFolders(ctx, projectID)
}

// UpdateFolder 重命名或移动目录，不能移动到自身或自己的子目录下
func (s *DocumentService) UpdateFolder(ctx context.Context, identity model.Identity, id string, req UpdateFolderRequest) (*model.Folder, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	folder, err := s.findFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, folder.ProjectID); err != nil {
		return nil, err
	}

	parentID := folder.ParentID
	if req.MoveToRoot {
		parentID = nil
	} else if target := normalizeID(req.ParentID); target != nil {
		if err := s.ensureNotDescendant(ctx, folder, *target); err != nil {
			return nil, err
		}
		parentID = target
	}

	name := folder.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if err := s.ensureFolderNameFree(ctx, folder.ProjectID, parentID, name, folder.ID); err != nil {
		return nil, err
	}

	folder.Name = name
	folder.ParentID = parentID
	if err := s.Repo.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder 只能删除空目录
func (s *DocumentService) DeleteFolder(ctx context.Context, identity model.Identity, id string) error {
	folder, err := s.findFolder(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.member(ctx, identity, folder.ProjectID); err != nil {
		return err
	}

	folders, documents, err := s.Repo.CountFolderChildren(ctx, id)
	if err != nil {
		return err
	}
	if folders > 0 || documents > 0 {
		return util.BadRequestf("folder is not empty: %d folders, %d documents", folders, documents)
	}
	return s.Repo.DeleteFolder(ctx, id)
}

// UploadDocument 嗅探 MIME 类型后上传到对象存储，落库失败时删除已上传的对象
func (s *DocumentService) UploadDocument(ctx context.Context, identity model.Identity, projectID, folderID string, file *multipart.FileHeader) (*model.Document, error) {
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}
	folderRef := normalizeID(&folderID)
	if folderRef != nil {
		if _, err := s.folderInProject(ctx, *folderRef, projectID); err != nil {
			return nil, err
		}
	}
	if file.Size > s.Storage.MaxUploadBytes() {
		return nil, util.BadRequestf("file exceeds the %d MB upload limit", s.Storage.MaxUploadBytes()>>20)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, util.AllowedDocumentTypes)
	if err != nil {
		return nil, util.BadRequestf("%s", err.Error())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	name := util.SanitizeFileName(file.Filename)
	key := util.BuildObjectKey("projects/"+projectID, name)
	url, err := s.Storage.Upload(ctx, key, src, file.Size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	document := &model.Document{
		ProjectID:  projectID,
		FolderID:   folderRef,
		Name:       name,
		ObjectKey:  key,
		URL:        url,
		MimeType:   mimeType,
		Size:       file.Size,
		UploaderID: identity.UserID,
	}
	if err := s.Repo.CreateDocument(ctx, document); err != nil {
		s.Storage.RemoveQuietly(ctx, key)
		return nil, err
	}
	return document, nil
}

// ListDocuments folderID 为空时返回项目下全部文档
func (s *DocumentService) ListDocuments(ctx context.Context, identity model.Identity, projectID, folderID string) ([]model.Document, error) {
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.Repo.ListDocuments(ctx, projectID, normalizeID(&folderID))
}

func (s *DocumentService) GetDocument(ctx context.Context, identity model.Identity, id string) (*model.Document, error) {
	document, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, document.ProjectID); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) UpdateDocument(ctx context.Context, identity model.Identity, id string, req UpdateDocumentRequest) (*model.Document, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	document, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, document.ProjectID); err != nil {
		return nil, err
	}

	if req.MoveToRoot {
		document.FolderID = nil
	} else if target := normalizeID(req.FolderID); target != nil {
		if _, err := s.folderInProject(ctx, *target, document.ProjectID); err != nil {
			return nil, err
		}
		document.FolderID = target
	}
	if req.Name != nil {
		document.Name = util.SanitizeFileName(strings.TrimSpace(*req.Name))
	}

	if err := s.Repo.UpdateDocument(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

// DeleteDocument 上传者、项目客户或管理员可以删除；存储对象删除失败只记日志
func (s *DocumentService) DeleteDocument(ctx context.Context, identity model.Identity, id string) error {
	document, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}
	project, err := s.member(ctx, identity, document.ProjectID)
	if err != nil {
		return err
	}
	if document.UploaderID != identity.UserID && project.ClientID != identity.UserID && !identity.IsAdmin() {
		return util.BadRequestf("only the uploader or the project client can delete this document")
	}

	if err := s.Repo.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.Storage.RemoveQuietly(ctx, document.ObjectKey)
	return nil
}

func (s *DocumentService) ensureNotDescendant(ctx context.Context, folder *model.Folder, targetID string) error {
	target, err := s.folderInProject(ctx, targetID, folder.ProjectID)
	if err != nil {
		return err
	}
	for depth := 0; target != nil; depth++ {
		if target.ID == folder.ID {
			return util.BadRequestf("a folder cannot be moved into itself or its subfolders")
		}
		if target.ParentID == nil || depth >= maxFolderDepth {
			return nil
		}
		if target, err = s.Repo.FindFolder(ctx, *target.ParentID); err != nil {
			return err
		}
	}
	return nil
}

func (s *DocumentService) ensureFolderNameFree(ctx context.Context, projectID string, parentID *string, name, excludeID string) error {
	taken, err := s.Repo.FolderNameTaken(ctx, projectID, parentID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return util.BadRequestf("a folder named %q already exists here", name)
	}
	return nil
}

// folderInProject 目录必须存在且属于同一个项目
func (s *DocumentService) folderInProject(ctx context.Context, folderID, projectID string) (*model.Folder, error) {
	folder, err := s.Repo.FindFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.ProjectID != projectID {
		return nil, util.BadRequestf("folder %s does not exist in this project", folderID)
	}
	return folder, nil
}

func (s *DocumentService) findFolder(ctx context.Context, id string) (*model.Folder, error) {
	folder, err := s.Repo.FindFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, util.NotFound("Folder")
	}
	return folder, nil
}

func (s *DocumentService) findDocument(ctx context.Context, id string) (*model.Document, error) {
	document, err := s.Repo.FindDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, util.NotFound("Document")
	}
	return document, nil
}

// normalizeID 去掉空白，空字符串视为未指定
func normalizeID(id *string) *string {
	if id == nil {
		return nil
	}
	return util.StringPtr(strings.TrimSpace(*id))
}
