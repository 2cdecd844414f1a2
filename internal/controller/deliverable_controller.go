package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DeliverableController struct {
	DeliverableService *service.DeliverableService
}

func NewDeliverableController(deliverableService *service.DeliverableService) *DeliverableController {
	return &DeliverableController{DeliverableService: deliverableService}
}

// CreateDeliverable godoc
// @Summary 创建交付物
// @Tags 交付物
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.CreateDeliverableRequest true "交付物信息"
// @Success 201 {object} util.Response{data=model.Deliverable}
// @Router /api/projects/{id}/deliverables [post]
func (c *DeliverableController) CreateDeliverable(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateDeliverableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deliverable, err := c.DeliverableService.Create(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, deliverable)
}

// ListDeliverables godoc
// @Summary 项目交付物列表
// @Tags 交付物
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param status query string false "状态"
// @Success 200 {object} util.Response{data=[]model.Deliverable}
// @Router /api/projects/{id}/deliverables [get]
func (c *DeliverableController) ListDeliverables(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var query service.DeliverableQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deliverables, err := c.DeliverableService.List(ctx.Request.Context(), identity, ctx.Param("id"), query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverables)
}

// GetDeliverable godoc
// @Summary 交付物详情
// @Tags 交付物
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Success 200 {object} util.Response{data=model.Deliverable}
// @Router /api/deliverables/{id} [get]
func (c *DeliverableController) GetDeliverable(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	deliverable, err := c.DeliverableService.Get(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverable)
}

// UpdateDeliverable godoc
// @Summary 更新交付物
// @Tags 交付物
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Param body body service.UpdateDeliverableRequest true "交付物信息"
// @Success 200 {object} util.Response{data=model.Deliverable}
// @Router /api/deliverables/{id} [put]
func (c *DeliverableController) UpdateDeliverable(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateDeliverableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deliverable, err := c.DeliverableService.Update(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverable)
}

// DeleteDeliverable godoc
// @Summary 删除交付物
// @Tags 交付物
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Success 204
// @Router /api/deliverables/{id} [delete]
func (c *DeliverableController) DeleteDeliverable(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.DeliverableService.Delete(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// StartDeliverable godoc
// @Summary 开始处理交付物
// @Tags 交付物
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Success 200 {object} util.Response{data=model.Deliverable}
// @Router /api/deliverables/{id}/start [patch]
func (c *DeliverableController) StartDeliverable(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	deliverable, err := c.DeliverableService.Start(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverable)
}

// SubmitForReview godoc
// @Summary 提交审核
// @Tags 交付物
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Param body body service.SubmitDeliverableRequest false "新附件"
// @Success 200 {object} util.Response{data=model.Deliverable}
// @Router /api/deliverables/{id}/review [post]
func (c *DeliverableController) SubmitForReview(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.SubmitDeliverableRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	deliverable, err := c.DeliverableService.SubmitForReview(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverable)
}

// ApproveDeliverable godoc
// @Summary 验收通过
// @Tags 交付物
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Param body body service.ApproveDeliverableRequest false "反馈"
// @Success 200 {object} util.Response{data=model.Deliverable}
// @Router /api/deliverables/{id}/approve [post]
func (c *DeliverableController) ApproveDeliverable(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.ApproveDeliverableRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	deliverable, err := c.DeliverableService.Approve(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverable)
}

// RequestRevision godoc
// @Summary 打回修改
// @Tags 交付物
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "交付物ID"
// @Param body body service.RevisionRequest true "修改意见"
// @Success 200 {object} util.Response{data=model.Deliverable}
// @Router /api/deliverables/{id}/revision [post]
func (c *DeliverableController) RequestRevision(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.RevisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deliverable, err := c.DeliverableService.RequestRevision(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, deliverable)
}
