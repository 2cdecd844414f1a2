package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// UpdateProgress godoc
// @Summary 更新学习进度
// @Description percentage 为本次新增进度，累加后封顶 100；首次完成时颁发证书
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Param body body service.UpdateProgressRequest true "新增进度"
// @Success 200 {object} util.Response{data=service.ProgressUpdateResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/resources/{id}/progress [patch]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.UpdateProgress(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetProgress godoc
// @Summary 查询资源学习进度
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Success 200 {object} util.Response{data=model.ResourceProgress}
// @Failure 404 {object} util.Response
// @Router /api/resources/{id}/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetProgress(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// ListProgress godoc
// @Summary 我的学习进度
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	p := util.GetPagination(ctx)
	list, total, err := c.ProgressService.ListProgress(ctx.Request.Context(), identity, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Page(ctx, list, total, p)
}

// ListCertificates godoc
// @Summary 我的证书
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *ProgressController) ListCertificates(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	certificates, err := c.ProgressService.ListCertificates(ctx.Request.Context(), identity)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, certificates)
}

// GetCertificate godoc
// @Summary 证书详情
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "证书ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/certificates/{id} [get]
func (c *ProgressController) GetCertificate(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	certificate, err := c.ProgressService.GetCertificate(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, certificate)
}
