package service

import (
	"context"
	"strings"
	"time"

	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"
	"freelance_hub_backend/internal/validation"
	"freelance_hub_backend/pkg/logger"

	"go.uber.org/zap"
)

type DeliverableAttachmentInput struct {
	FileName string `json:"fileName" binding:"required,max=255"`
	URL      string `json:"url" binding:"required,max=512"`
	Size     int64  `json:"size" binding:"gte=0"`
}

type CreateDeliverableRequest struct {
	Title       string                       `json:"title" binding:"required,max=255"`
	Description string                       `json:"description" binding:"max=5000"`
	DueDate     *time.Time                   `json:"dueDate"`
	Attachments []DeliverableAttachmentInput `json:"attachments" binding:"omitempty,dive"`
}

// UpdateDeliverableRequest Attachments 不为 nil 时整体替换附件
type UpdateDeliverableRequest struct {
	Title       *string                      `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string                      `json:"description" binding:"omitempty,max=5000"`
	DueDate     *time.Time                   `json:"dueDate"`
	Attachments []DeliverableAttachmentInput `json:"attachments" binding:"omitempty,dive"`
}

// SubmitDeliverableRequest 提交审核时可以附带新的文件
type SubmitDeliverableRequest struct {
	Attachments []DeliverableAttachmentInput `json:"attachments" binding:"omitempty,dive"`
}

type ApproveDeliverableRequest struct {
	Feedback string `json:"feedback" binding:"max=5000"`
}

type RevisionRequest struct {
	Feedback string `json:"feedback" binding:"required,max=5000"`
}

type DeliverableQuery struct {
	Status model.DeliverableStatus `form:"status" binding:"omitempty,oneof=pending in_progress submitted approved revision_requested"`
}

// deliverableTransitions 允许的状态流转
var deliverableTransitions = map[model.DeliverableStatus][]model.DeliverableStatus{
	model.DeliverablePending:           {model.DeliverableInProgress, model.DeliverableSubmitted},
	model.DeliverableInProgress:        {model.DeliverableSubmitted},
	model.DeliverableRevisionRequested: {model.DeliverableSubmitted},
	model.DeliverableSubmitted:         {model.DeliverableApproved, model.DeliverableRevisionRequested},
}

func canTransition(from, to model.DeliverableStatus) bool {
	for _, next := range deliverableTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type DeliverableService struct {
	projectAccess
	Repo repository.DeliverableRepository
	Now  func() time.Time
}

func NewDeliverableService(repo repository.DeliverableRepository, projects repository.ProjectRepository) *DeliverableService {
	return &DeliverableService{
		projectAccess: projectAccess{projects: projects},
		Repo:          repo,
		Now:           time.Now,
	}
}

func (s *DeliverableService) Create(ctx context.Context, identity model.Identity, projectID string, req CreateDeliverableRequest) (*model.Deliverable, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.client(ctx, identity, projectID); err != nil {
		return nil, err
	}

	deliverable := &model.Deliverable{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      model.DeliverablePending,
		Attachments: toDeliverableAttachments(req.Attachments),
	}
	if err := s.Repo.CreateWithAttachments(ctx, deliverable); err != nil {
		return nil, err
	}
	return deliverable, nil
}

func (s *DeliverableService) List(ctx context.Context, identity model.Identity, projectID string, query DeliverableQuery) ([]model.Deliverable, error) {
	if err := validation.ValidateStruct(query); err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.Repo.ListByProject(ctx, projectID, query.Status)
}

func (s *DeliverableService) Get(ctx context.Context, identity model.Identity, id string) (*model.Deliverable, error) {
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.member(ctx, identity, deliverable.ProjectID); err != nil {
		return nil, err
	}
	return deliverable, nil
}

func (s *DeliverableService) Update(ctx context.Context, identity model.Identity, id string, req UpdateDeliverableRequest) (*model.Deliverable, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.client(ctx, identity, deliverable.ProjectID); err != nil {
		return nil, err
	}
	if deliverable.Status == model.DeliverableApproved {
		return nil, util.BadRequestf("approved deliverables cannot be edited")
	}

	if req.Title != nil {
		deliverable.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		deliverable.Description = *req.Description
	}
	if req.DueDate != nil {
		deliverable.DueDate = req.DueDate
	}

	if err := s.Repo.UpdateWithAttachments(ctx, deliverable, toDeliverableAttachments(req.Attachments), req.Attachments != nil); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *DeliverableService) Delete(ctx context.Context, identity model.Identity, id string) error {
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.client(ctx, identity, deliverable.ProjectID); err != nil {
		return err
	}
	return s.Repo.DeleteCascade(ctx, id)
}

// Start 自由职业者开始处理：pending -> in_progress
func (s *DeliverableService) Start(ctx context.Context, identity model.Identity, id string) (*model.Deliverable, error) {
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.freelancer(ctx, identity, deliverable.ProjectID); err != nil {
		return nil, err
	}
	if err := s.transition(deliverable, model.DeliverableInProgress); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateWithAttachments(ctx, deliverable, nil, false); err != nil {
		return nil, err
	}
	return deliverable, nil
}

// SubmitForReview 自由职业者提交审核，新附件追加到已有附件后
func (s *DeliverableService) SubmitForReview(ctx context.Context, identity model.Identity, id string, req SubmitDeliverableRequest) (*model.Deliverable, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.freelancer(ctx, identity, deliverable.ProjectID); err != nil {
		return nil, err
	}
	if err := s.transition(deliverable, model.DeliverableSubmitted); err != nil {
		return nil, err
	}

	now := s.Now()
	deliverable.SubmittedAt = &now
	if err := s.Repo.UpdateWithAttachments(ctx, deliverable, toDeliverableAttachments(req.Attachments), false); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}

// Approve 客户验收：submitted -> approved
func (s *DeliverableService) Approve(ctx context.Context, identity model.Identity, id string, req ApproveDeliverableRequest) (*model.Deliverable, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.client(ctx, identity, deliverable.ProjectID); err != nil {
		return nil, err
	}
	if err := s.transition(deliverable, model.DeliverableApproved); err != nil {
		return nil, err
	}

	now := s.Now()
	deliverable.ApprovedAt = &now
	if req.Feedback != "" {
		deliverable.Feedback = req.Feedback
	}
	if err := s.Repo.UpdateWithAttachments(ctx, deliverable, nil, false); err != nil {
		return nil, err
	}
	logger.Log.Info("Deliverable approved", zap.String("deliverableID", id), zap.Uint("by", identity.UserID))
	return deliverable, nil
}

// RequestRevision 客户打回修改：submitted -> revision_requested，必须给出反馈
func (s *DeliverableService) RequestRevision(ctx context.Context, identity model.Identity, id string, req RevisionRequest) (*model.Deliverable, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	deliverable, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.client(ctx, identity, deliverable.ProjectID); err != nil {
		return nil, err
	}
	if err := s.transition(deliverable, model.DeliverableRevisionRequested); err != nil {
		return nil, err
	}

	deliverable.Feedback = strings.TrimSpace(req.Feedback)
	deliverable.RevisionCount++
	if err := s.Repo.UpdateWithAttachments(ctx, deliverable, nil, false); err != nil {
		return nil, err
	}
	return deliverable, nil
}

func (s *DeliverableService) transition(deliverable *model.Deliverable, to model.DeliverableStatus) error {
	if !canTransition(deliverable.Status, to) {
		return util.BadRequestf("cannot move deliverable from %s to %s", deliverable.Status, to)
	}
	deliverable.Status = to
	return nil
}

func (s *DeliverableService) find(ctx context.Context, id string) (*model.Deliverable, error) {
	deliverable, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deliverable == nil {
		return nil, util.NotFound("Deliverable")
	}
	return deliverable, nil
}

func toDeliverableAttachments(inputs []DeliverableAttachmentInput) []model.DeliverableAttachment {
	if len(inputs) == 0 {
		return nil
	}
	attachments := make([]model.DeliverableAttachment, 0, len(inputs))
	for _, in := range inputs {
		attachments = append(attachments, model.DeliverableAttachment{
			FileName: in.FileName,
			URL:      in.URL,
			Size:     in.Size,
		})
	}
	return attachments
}
