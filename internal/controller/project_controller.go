package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

// CreateProject godoc
// @Summary 创建项目
// @Description 调用者成为项目客户，自由职业者不能创建项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateProjectRequest true "项目信息"
// @Success 201 {object} util.Response{data=model.Project}
// @Failure 403 {object} util.Response
// @Router /api/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ProjectService.Create(ctx.Request.Context(), identity, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, project)
}

// ListProjects godoc
// @Summary 我的项目
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "项目状态"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var query service.ProjectQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := util.GetPagination(ctx)
	projects, total, err := c.ProjectService.List(ctx.Request.Context(), identity, query, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Page(ctx, projects, total, p)
}

// GetProject godoc
// @Summary 项目详情
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} util.Response{data=model.Project}
// @Router /api/projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	project, err := c.ProjectService.Get(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// UpdateProject godoc
// @Summary 更新项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.UpdateProjectRequest true "项目信息"
// @Success 200 {object} util.Response{data=model.Project}
// @Router /api/projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ProjectService.Update(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// AssignFreelancer godoc
// @Summary 指派自由职业者
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.AssignFreelancerRequest true "自由职业者ID"
// @Success 200 {object} util.Response{data=model.Project}
// @Router /api/projects/{id}/assign [patch]
func (c *ProjectController) AssignFreelancer(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.AssignFreelancerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ProjectService.AssignFreelancer(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// DeleteProject godoc
// @Summary 删除项目
// @Description 同时删除交付物、文档、看板和会议
// @Tags 项目
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 204
// @Router /api/projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.ProjectService.Delete(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
