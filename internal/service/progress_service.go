package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
	"freelance_hub_backend/pkg/logger"
	"freelance_hub_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateProgressRequest Percentage 是本次学习新增的百分比，累加到已有进度上
type UpdateProgressRequest struct {
	Percentage *int `json:"percentage" binding:"required,gte=0,lte=100"`
}

type ProgressView struct {
	ID         string    `json:"id"`
	Percentage int       `json:"percentage"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProgressUpdateResult Certificate 只在本次调用颁发了证书时出现
type ProgressUpdateResult struct {
	Progress    ProgressView       `json:"progress"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
}

type ProgressService struct {
	Repo      repository.ProgressRepository
	Resources repository.ResourceRepository
	Now       func() time.Time
}

func NewProgressService(repo repository.ProgressRepository, resources repository.ResourceRepository) *ProgressService {
	return &ProgressService{Repo: repo, Resources: resources, Now: time.Now}
}

// UpdateProgress 累加学习进度，封顶 100。
// 进度行的写入和首次完成时的证书颁发在同一事务里，要么都成功要么都不生效。
func (s *ProgressService) UpdateProgress(ctx context.Context, identity model.Identity, resourceID string, req UpdateProgressRequest) (*ProgressUpdateResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := findVisibleResource(ctx, s.Resources, identity, resourceID); err != nil {
		return nil, err
	}

	delta := *req.Percentage
	var progress *model.ResourceProgress
	var issued *model.Certificate

	err := s.Repo.WithTx(ctx, func(tx repository.ProgressRepository) error {
		existing, err := tx.FindProgress(ctx, identity.UserID, resourceID)
		if err != nil {
			return err
		}

		now := s.Now()
		wasCompleted := false
		if existing == nil {
			progress = &model.ResourceProgress{
				UserID:     identity.UserID,
				ResourceID: resourceID,
				Percentage: min(100, delta),
			}
		} else {
			progress = existing
			wasCompleted = existing.Completed
			progress.Percentage = min(100, existing.Percentage+delta)
		}
		progress.LastAccessedAt = now
		progress.Completed = progress.Percentage >= 100
		justCompleted := progress.Completed && !wasCompleted
		if justCompleted {
			progress.CompletedAt = &now
		}

		if err := tx.SaveProgress(ctx, progress); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		if !justCompleted {
			return nil
		}

		certificate, err := tx.FindCertificate(ctx, identity.UserID, resourceID)
		if err != nil {
			return err
		}
		if certificate != nil {
			return nil
		}
		issued = &model.Certificate{
			UserID:            identity.UserID,
			ResourceID:        resourceID,
			CertificateNumber: newCertificateNumber(now),
			IssuedAt:          now,
		}
		if err := tx.CreateCertificate(ctx, issued); err != nil {
			return fmt.Errorf("create certificate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.ProgressUpdates.Inc()
	if issued != nil {
		monitoring.CertificatesIssued.Inc()
		logger.Log.Info("Certificate issued",
			zap.Uint("userID", identity.UserID),
			zap.String("resourceID", resourceID),
			zap.String("certificateNumber", issued.CertificateNumber))
	}

	return &ProgressUpdateResult{
		Progress: ProgressView{
			ID:         progress.ID,
			Percentage: progress.Percentage,
			Completed:  progress.Completed,
			CreatedAt:  progress.CreatedAt,
			UpdatedAt:  progress.UpdatedAt,
		},
		Certificate: issued,
	}, nil
}

func (s *ProgressService) GetProgress(ctx context.Context, identity model.Identity, resourceID string) (*model.ResourceProgress, error) {
	progress, err := s.Repo.FindProgress(ctx, identity.UserID, resourceID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, util.NotFound("Progress")
	}
	return progress, nil
}

func (s *ProgressService) ListProgress(ctx context.Context, identity model.Identity, p util.Pagination) ([]model.ResourceProgress, int64, error) {
	return s.Repo.ListProgress(ctx, identity.UserID, p.Offset(), p.Limit)
}

func (s *ProgressService) ListCertificates(ctx context.Context, identity model.Identity) ([]model.Certificate, error) {
	return s.Repo.ListCertificates(ctx, identity.UserID)
}

// GetCertificate 只有持有人和管理员能查看，其他人按不存在处理
func (s *ProgressService) GetCertificate(ctx context.Context, identity model.Identity, id string) (*model.Certificate, error) {
	certificate, err := s.Repo.FindCertificateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if certificate == nil || (certificate.UserID != identity.UserID && !identity.IsAdmin()) {
		return nil, util.NotFound("Certificate")
	}
	return certificate, nil
}

// newCertificateNumber 形如 CERT-20250101-1A2B3C4D
func newCertificateNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "CERT-" + at.Format(util.CompactDate) + "-" + suffix
}
