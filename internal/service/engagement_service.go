package service

import (
	"context"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/pkg/monitoring"
)

type ToggleResult struct {
	Added bool `json:"added"`
}

// EngagementService 收藏和置顶，都是“存在即删除，不存在即创建”
type EngagementService struct {
	Repo      repository.EngagementRepository
	Resources repository.ResourceRepository
}

func NewEngagementService(repo repository.EngagementRepository, resources repository.ResourceRepository) *EngagementService {
	return &EngagementService{Repo: repo, Resources: resources}
}

func (s *EngagementService) ToggleFavorite(ctx context.Context, identity model.Identity, resourceID string) (*ToggleResult, error) {
	if err := s.ensureResource(ctx, identity, resourceID); err != nil {
		return nil, err
	}
	added, err := s.Repo.ToggleFavorite(ctx, identity.UserID, resourceID)
	if err != nil {
		return nil, err
	}
	monitoring.RecordToggle("favorite", added)
	return &ToggleResult{Added: added}, nil
}

func (s *EngagementService) TogglePin(ctx context.Context, identity model.Identity, resourceID string) (*ToggleResult, error) {
	if err := s.ensureResource(ctx, identity, resourceID); err != nil {
		return nil, err
	}
	added, err := s.Repo.TogglePin(ctx, identity.UserID, resourceID)
	if err != nil {
		return nil, err
	}
	monitoring.RecordToggle("pin", added)
	return &ToggleResult{Added: added}, nil
}

func (s *EngagementService) ListFavorites(ctx context.Context, identity model.Identity) ([]model.Favorite, error) {
	return s.Repo.ListFavorites(ctx, identity.UserID)
}

func (s *EngagementService) ListPins(ctx context.Context, identity model.Identity) ([]model.Pin, error) {
	return s.Repo.ListPins(ctx, identity.UserID)
}

func (s *EngagementService) ensureResource(ctx context.Context, identity model.Identity, resourceID string) error {
	_, err := findVisibleResource(ctx, s.Resources, identity, resourceID)
	return err
}
