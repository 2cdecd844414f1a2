package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
	"freelance_hub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type AttachmentInput struct {
	FileName string `json:"fileName" binding:"required,max=255"`
	URL      string `json:"url" binding:"required,max=512"`
	MimeType string `json:"mimeType" binding:"max=100"`
	Size     int64  `json:"size" binding:"gte=0"`
}

type CreateResourceRequest struct {
	Title            string             `json:"title" binding:"required,max=255"`
	Summary          string             `json:"summary" binding:"max=2000"`
	Content          string             `json:"content"`
	Type             model.ResourceType `json:"type" binding:"omitempty,oneof=article video pdf course"`
	CategoryID       string             `json:"categoryId" binding:"required"`
	IsPublished      bool               `json:"isPublished"`
	EstimatedMinutes int                `json:"estimatedMinutes" binding:"gte=0"`
	Attachments      []AttachmentInput  `json:"attachments" binding:"omitempty,dive"`
}

// UpdateResourceRequest 指针字段为 nil 表示不修改；Attachments 不为 nil 时整体替换附件
type UpdateResourceRequest struct {
	Title            *string             `json:"title" binding:"omitempty,min=1,max=255"`
	Summary          *string             `json:"summary" binding:"omitempty,max=2000"`
	Content          *string             `json:"content"`
	Type             *model.ResourceType `json:"type" binding:"omitempty,oneof=article video pdf course"`
	CategoryID       *string             `json:"categoryId" binding:"omitempty,min=1"`
	IsPublished      *bool               `json:"isPublished"`
	EstimatedMinutes *int                `json:"estimatedMinutes" binding:"omitempty,gte=0"`
	Attachments      []AttachmentInput   `json:"attachments" binding:"omitempty,dive"`
}

type ResourceQuery struct {
	CategoryID string             `form:"categoryId"`
	Type       model.ResourceType `form:"type" binding:"omitempty,oneof=article video pdf course"`
	Search     string             `form:"search" binding:"max=100"`
}

type ResourceService struct {
	Repo            repository.ResourceRepository
	Categories      repository.CategoryRepository
	Storage         *StorageService
	Redis           *redis.Client
	ViewDedupWindow time.Duration
}

func NewResourceService(
	repo repository.ResourceRepository,
	categories repository.CategoryRepository,
	storage *StorageService,
	rdb *redis.Client,
	viewDedupWindow time.Duration,
) *ResourceService {
	return &ResourceService{
		Repo:            repo,
		Categories:      categories,
		Storage:         storage,
		Redis:           rdb,
		ViewDedupWindow: viewDedupWindow,
	}
}

// List 公开列表只返回已发布的资源
func (s *ResourceService) List(ctx context.Context, query ResourceQuery, p util.Pagination) ([]model.Resource, int64, error) {
	return s.list(ctx, query, false, p)
}

// ListAll 管理员视角，包含未发布的资源
func (s *ResourceService) ListAll(ctx context.Context, identity model.Identity, query ResourceQuery, p util.Pagination) ([]model.Resource, int64, error) {
	if !identity.IsAdmin() {
		return nil, 0, util.ErrPermissionDenied
	}
	return s.list(ctx, query, true, p)
}

func (s *ResourceService) list(ctx context.Context, query ResourceQuery, includeUnpublished bool, p util.Pagination) ([]model.Resource, int64, error) {
	if err := validation.ValidateStruct(query); err != nil {
		return nil, 0, err
	}
	return s.Repo.List(ctx, repository.ResourceFilter{
		CategoryID:         query.CategoryID,
		Type:               query.Type,
		Search:             strings.TrimSpace(query.Search),
		IncludeUnpublished: includeUnpublished,
	}, p.Offset(), p.Limit)
}

// Get 未发布的资源只有作者和管理员可见。同一用户在去重窗口内重复查看只计一次。
func (s *ResourceService) Get(ctx context.Context, identity model.Identity, id string) (*model.Resource, error) {
	resource, err := findVisibleResource(ctx, s.Repo, identity, id)
	if err != nil {
		return nil, err
	}

	if s.shouldCountView(ctx, identity, id) {
		if err := s.Repo.IncrementViewCount(ctx, id); err != nil {
			logger.Log.Warn("Failed to increment view count", zap.String("resourceID", id), zap.Error(err))
		} else {
			resource.ViewCount++
		}
	}
	return resource, nil
}

// findVisibleResource 查找调用者可见的资源，未发布且调用者不是作者或管理员时按不存在处理
func findVisibleResource(ctx context.Context, repo repository.ResourceRepository, identity model.Identity, id string) (*model.Resource, error) {
	resource, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, util.NotFound("Resource")
	}
	if !resource.IsPublished && !identity.IsAdmin() && resource.AuthorID != identity.UserID {
		return nil, util.NotFound("Resource")
	}
	return resource, nil
}

func (s *ResourceService) shouldCountView(ctx context.Context, identity model.Identity, id string) bool {
	if s.Redis == nil {
		return true
	}
	key := fmt.Sprintf("library:resource:view:%s:%d", id, identity.UserID)
	isNewVisit, err := s.Redis.SetNX(ctx, key, "1", s.ViewDedupWindow).Result()
	if err != nil {
		// redis 不可用时照常计数
		logger.Log.Warn("View dedup unavailable", zap.Error(err))
		return true
	}
	return isNewVisit
}

func (s *ResourceService) Create(ctx context.Context, identity model.Identity, req CreateResourceRequest) (*model.Resource, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.ensureActiveCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	resourceType := req.Type
	if resourceType == "" {
		resourceType = model.ResourceArticle
	}
	resource := &model.Resource{
		Title:            strings.TrimSpace(req.Title),
		Summary:          req.Summary,
		Content:          req.Content,
		Type:             resourceType,
		CategoryID:       req.CategoryID,
		AuthorID:         identity.UserID,
		IsPublished:      req.IsPublished,
		EstimatedMinutes: req.EstimatedMinutes,
		Attachments:      toResourceAttachments(req.Attachments),
	}
	if err := s.Repo.CreateWithAttachments(ctx, resource); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return s.Repo.FindByID(ctx, resource.ID)
}

func (s *ResourceService) Update(ctx context.Context, id string, req UpdateResourceRequest) (*model.Resource, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	resource, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, util.NotFound("Resource")
	}

	if req.CategoryID != nil && *req.CategoryID != resource.CategoryID {
		if err := s.ensureActiveCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		resource.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		resource.Title = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		resource.Summary = *req.Summary
	}
	if req.Content != nil {
		resource.Content = *req.Content
	}
	if req.Type != nil {
		resource.Type = *req.Type
	}
	if req.IsPublished != nil {
		resource.IsPublished = *req.IsPublished
	}
	if req.EstimatedMinutes != nil {
		resource.EstimatedMinutes = *req.EstimatedMinutes
	}

	replace := req.Attachments != nil
	resource.Category = nil
	resource.Author = nil
	if err := s.Repo.UpdateWithAttachments(ctx, resource, toResourceAttachments(req.Attachments), replace); err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	resource, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if resource == nil {
		return util.NotFound("Resource")
	}
	return s.Repo.DeleteCascade(ctx, id)
}

// UploadAttachment 上传附件到对象存储；视频额外探测时长并生成封面，失败时使用默认封面
func (s *ResourceService) UploadAttachment(ctx context.Context, id string, file *multipart.FileHeader) (*model.ResourceAttachment, error) {
	resource, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, util.NotFound("Resource")
	}
	if file.Size > s.Storage.MaxUploadBytes() {
		return nil, util.BadRequestf("file exceeds the %d MB upload limit", s.Storage.MaxUploadBytes()>>20)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.DetectMimeType(src)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	fileName := util.SanitizeFileName(file.Filename)
	key := util.BuildObjectKey("resources/"+id, fileName)
	attachment := &model.ResourceAttachment{
		ResourceID: id,
		FileName:   fileName,
		MimeType:   mimeType,
		Size:       file.Size,
	}

	if util.IsVideo(mimeType) || util.IsVideoExt(fileName) {
		if err := s.uploadVideo(ctx, src, key, attachment); err != nil {
			return nil, err
		}
	} else {
		url, err := s.Storage.Upload(ctx, key, src, file.Size, mimeType)
		if err != nil {
			return nil, fmt.Errorf("upload attachment: %w", err)
		}
		attachment.URL = url
	}

	if err := s.Repo.AddAttachment(ctx, attachment); err != nil {
		s.Storage.RemoveQuietly(ctx, key)
		return nil, err
	}
	return attachment, nil
}

// copyAndClose Close 失败说明文件没有完整落盘，同样视为写入失败
func copyAndClose(dst io.WriteCloser, src io.Reader) error {
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// uploadVideo 视频先落到临时文件，ffmpeg 需要本地路径
func (s *ResourceService) uploadVideo(ctx context.Context, src io.Reader, key string, attachment *model.ResourceAttachment) error {
	tmpDir, err := os.MkdirTemp("", "resource-video-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, "source"+filepath.Ext(key))
	out, err := os.Create(videoPath)
	if err != nil {
		return err
	}
	if err := copyAndClose(out, src); err != nil {
		return err
	}

	attachment.Thumbnail = s.Storage.GetURL(util.DefaultVideoThumbnail)
	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("Video probe failed", zap.String("key", key), zap.Error(err))
	} else {
		attachment.Duration = info.Duration
	}

	thumbPath := filepath.Join(tmpDir, "thumbnail.jpg")
	if err := util.GenerateThumbnail(videoPath, thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("Thumbnail generation failed", zap.String("key", key), zap.Error(err))
	} else {
		thumbKey := strings.TrimSuffix(key, filepath.Ext(key)) + "-thumb.jpg"
		if url, err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err != nil {
			logger.Log.Warn("Thumbnail upload failed", zap.String("key", thumbKey), zap.Error(err))
		} else {
			attachment.Thumbnail = url
		}
	}

	url, err := s.Storage.UploadFile(ctx, key, videoPath, attachment.MimeType)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	attachment.URL = url
	return nil
}

func (s *ResourceService) ensureActiveCategory(ctx context.Context, categoryID string) error {
	category, err := s.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return util.BadRequestf("category %s does not exist", categoryID)
	}
	if !category.IsActive {
		return util.BadRequestf("category %q is inactive", category.Name)
	}
	return nil
}

func toResourceAttachments(inputs []AttachmentInput) []model.ResourceAttachment {
	if len(inputs) == 0 {
		return nil
	}
	attachments := make([]model.ResourceAttachment, 0, len(inputs))
	for _, in := range inputs {
		attachments = append(attachments, model.ResourceAttachment{
			FileName: in.FileName,
			URL:      in.URL,
			MimeType: in.MimeType,
			Size:     in.Size,
		})
	}
	return attachments
}
