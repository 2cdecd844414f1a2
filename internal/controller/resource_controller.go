package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// ListResources godoc
// @Summary 资源列表
// @Description 只返回已发布的资源
// @Tags 资源
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId query string false "分类ID"
// @Param type query string false "资源类型"
// @Param search query string false "标题或摘要关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	var query service.ResourceQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := util.GetPagination(ctx)
	resources, total, err := c.ResourceService.List(ctx.Request.Context(), query, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Page(ctx, resources, total, p)
}

// ListAllResources godoc
// @Summary 全部资源（含未发布）
// @Tags 资源
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/resources/all [get]
func (c *ResourceController) ListAllResources(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var query service.ResourceQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := util.GetPagination(ctx)
	resources, total, err := c.ResourceService.ListAll(ctx.Request.Context(), identity, query, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Page(ctx, resources, total, p)
}

// GetResource godoc
// @Summary 资源详情
// @Description 同一用户 10 分钟内重复查看只计一次浏览
// @Tags 资源
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Success 200 {object} util.Response{data=model.Resource}
// @Failure 404 {object} util.Response
// @Router /api/resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	resource, err := c.ResourceService.Get(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resource)
}

// CreateResource godoc
// @Summary 创建资源
// @Tags 资源
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateResourceRequest true "资源信息"
// @Success 201 {object} util.Response{data=model.Resource}
// @Failure 400 {object} util.Response
// @Router /api/resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.ResourceService.Create(ctx.Request.Context(), identity, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

// UpdateResource godoc
// @Summary 更新资源
// @Description attachments 字段存在时整体替换附件
// @Tags 资源
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Param body body service.UpdateResourceRequest true "资源信息"
// @Success 200 {object} util.Response{data=model.Resource}
// @Router /api/resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	var req service.UpdateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.ResourceService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resource)
}

// DeleteResource godoc
// @Summary 删除资源
// @Description 同时删除附件、评论、回复、表情、收藏和置顶
// @Tags 资源
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Success 204
// @Router /api/resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	if err := c.ResourceService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// UploadAttachment godoc
// @Summary 上传资源附件
// @Description 视频会自动生成封面并探测时长
// @Tags 资源
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Param file formData file true "附件"
// @Success 201 {object} util.Response{data=model.ResourceAttachment}
// @Router /api/resources/{id}/attachments [post]
func (c *ResourceController) UploadAttachment(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	attachment, err := c.ResourceService.UploadAttachment(ctx.Request.Context(), ctx.Param("id"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attachment)
}
