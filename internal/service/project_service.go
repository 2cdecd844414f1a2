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

type CreateProjectRequest struct {
	Title        string     `json:"title" binding:"required,max=255"`
	Description  string     `json:"description" binding:"max=5000"`
	Budget       float64    `json:"budget" binding:"gte=0"`
	DueDate      *time.Time `json:"dueDate"`
	FreelancerID *uint      `json:"freelancerId"`
}

type UpdateProjectRequest struct {
	Title       *string              `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string              `json:"description" binding:"omitempty,max=5000"`
	Budget      *float64             `json:"budget" binding:"omitempty,gte=0"`
	DueDate     *time.Time           `json:"dueDate"`
	Status      *model.ProjectStatus `json:"status" binding:"omitempty,oneof=active completed archived"`
}

type AssignFreelancerRequest struct {
	FreelancerID *uint `json:"freelancerId" binding:"required"`
}

type ProjectQuery struct {
	Status model.ProjectStatus `form:"status" binding:"omitempty,oneof=active completed archived"`
}

// projectAccess 项目成员校验，交付物、文档、看板、会议共用
type projectAccess struct {
	projects repository.ProjectRepository
}

// member 客户、自由职业者或管理员
func (a projectAccess) member(ctx context.Context, identity model.Identity, projectID string) (*model.Project, error) {
	project, err := a.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, util.NotFound("Project")
	}
	if !identity.IsAdmin() && !project.IsMember(identity.UserID) {
		return nil, util.BadRequestf("you are not a member of this project")
	}
	return project, nil
}

// client 项目客户或管理员
func (a projectAccess) client(ctx context.Context, identity model.Identity, projectID string) (*model.Project, error) {
	project, err := a.member(ctx, identity, projectID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && project.ClientID != identity.UserID {
		return nil, util.BadRequestf("only the project client can perform this action")
	}
	return project, nil
}

// freelancer 项目指派的自由职业者或管理员
func (a projectAccess) freelancer(ctx context.Context, identity model.Identity, projectID string) (*model.Project, error) {
	project, err := a.member(ctx, identity, projectID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && !project.IsFreelancer(identity.UserID) {
		return nil, util.BadRequestf("only the assigned freelancer can perform this action")
	}
	return project, nil
}

type ProjectService struct {
	projectAccess
	Repo      repository.ProjectRepository
	Users     repository.UserRepository
	Documents repository.DocumentRepository
	Storage   *StorageService
}

func NewProjectService(
	repo repository.ProjectRepository,
	users repository.UserRepository,
	documents repository.DocumentRepository,
	storage *StorageService,
) *ProjectService {
	return &ProjectService{
		projectAccess: projectAccess{projects: repo},
		Repo:          repo,
		Users:         users,
		Documents:     documents,
		Storage:       storage,
	}
}

// Create 调用者成为项目客户
func (s *ProjectService) Create(ctx context.Context, identity model.Identity, req CreateProjectRequest) (*model.Project, error) {
	if identity.Role == model.Freelancer {
		return nil, util.ErrPermissionDenied
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.FreelancerID != nil {
		if err := s.ensureFreelancer(ctx, *req.FreelancerID); err != nil {
			return nil, err
		}
	}

	project := &model.Project{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		ClientID:     identity.UserID,
		FreelancerID: req.FreelancerID,
		Status:       model.ProjectActive,
		Budget:       req.Budget,
		DueDate:      req.DueDate,
	}
	if err := s.Repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List 普通用户只看到自己参与的项目，管理员看到全部
func (s *ProjectService) List(ctx context.Context, identity model.Identity, query ProjectQuery, p util.Pagination) ([]model.Project, int64, error) {
	if err := validation.ValidateStruct(query); err != nil {
		return nil, 0, err
	}
	filter := repository.ProjectFilter{Status: query.Status}
	if !identity.IsAdmin() {
		filter.MemberID = identity.UserID
	}
	return s.Repo.List(ctx, filter, p.Offset(), p.Limit)
}

func (s *ProjectService) Get(ctx context.Context, identity model.Identity, id string) (*model.Project, error) {
	return s.member(ctx, identity, id)
}

func (s *ProjectService) Update(ctx context.Context, identity model.Identity, id string, req UpdateProjectRequest) (*model.Project, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	project, err := s.client(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := s.Repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) AssignFreelancer(ctx context.Context, identity model.Identity, id string, req AssignFreelancerRequest) (*model.Project, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	project, err := s.client(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFreelancer(ctx, *req.FreelancerID); err != nil {
		return nil, err
	}

	project.FreelancerID = req.FreelancerID
	if err := s.Repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete 删除项目及其下所有数据，存储中的文档在事务提交后清理
func (s *ProjectService) Delete(ctx context.Context, identity model.Identity, id string) error {
	if _, err := s.client(ctx, identity, id); err != nil {
		return err
	}

	keys, err := s.Documents.ObjectKeysByProject(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	for _, key := range keys {
		s.Storage.RemoveQuietly(ctx, key)
	}
	logger.Log.Info("Project deleted", zap.String("projectID", id), zap.Int("documents", len(keys)))
	return nil
}

func (s *ProjectService) ensureFreelancer(ctx context.Context, userID uint) error {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.Role != model.Freelancer {
		return util.BadRequestf("user %d is not a freelancer", userID)
	}
	return nil
}
