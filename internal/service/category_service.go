package service

import (
	"context"
	"encoding/json"
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

const activeCategoriesCacheKey = "library:categories:active"

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type CategoryService struct {
	Repo     repository.CategoryRepository
	Redis    *redis.Client
	CacheTTL time.Duration
}

// NewCategoryService rdb 可以为 nil，此时不做缓存
func NewCategoryService(repo repository.CategoryRepository, rdb *redis.Client, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{Repo: repo, Redis: rdb, CacheTTL: cacheTTL}
}

// List 只有管理员可以看到停用的分类；启用分类列表走 redis 缓存
func (s *CategoryService) List(ctx context.Context, identity model.Identity, includeInactive bool) ([]model.Category, error) {
	if includeInactive && identity.IsAdmin() {
		return s.Repo.List(ctx, true)
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, activeCategoriesCacheKey).Bytes(); err == nil {
			var categories []model.Category
			if err := json.Unmarshal(cached, &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.Repo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.Redis.Set(ctx, activeCategoriesCacheKey, data, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache categories", zap.Error(err))
			}
		}
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, identity model.Identity, id string) (*model.Category, error) {
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || (!category.IsActive && !identity.IsAdmin()) {
		return nil, util.NotFound("Category")
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	category := &model.Category{Name: name, Description: req.Description, IsActive: true}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*model.Category, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, util.NotFound("Category")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != category.Name {
			if err := s.ensureNameFree(ctx, name, category.ID); err != nil {
				return nil, err
			}
			category.Name = name
		}
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.Repo.Update(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Delete 仍有资源引用的分类不能删除
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return util.NotFound("Category")
	}

	count, err := s.Repo.CountResources(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.BadRequestf("cannot delete category with %d associated resources", count)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) SetActive(ctx context.Context, id string, active bool) (*model.Category, error) {
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, util.NotFound("Category")
	}
	if err := s.Repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	category.IsActive = active
	s.invalidate(ctx)
	return category, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.Repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return util.BadRequestf("category %q already exists", name)
	}
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, activeCategoriesCacheKey).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate category cache", zap.Error(err))
	}
}
