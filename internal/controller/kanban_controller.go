package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KanbanController struct {
	KanbanService *service.KanbanService
}

func NewKanbanController(kanbanService *service.KanbanService) *KanbanController {
	return &KanbanController{KanbanService: kanbanService}
}

// CreateBoard godoc
// @Summary 创建看板
// @Description 未指定列时创建 To Do / In Progress / Done 三列
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.CreateBoardRequest true "看板信息"
// @Success 201 {object} util.Response{data=model.KanbanBoard}
// @Router /api/projects/{id}/boards [post]
func (c *KanbanController) CreateBoard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateBoardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	board, err := c.KanbanService.CreateBoard(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, board)
}

// ListBoards godoc
// @Summary 项目看板列表
// @Tags 看板
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} util.Response{data=[]model.KanbanBoard}
// @Router /api/projects/{id}/boards [get]
func (c *KanbanController) ListBoards(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	boards, err := c.KanbanService.ListBoards(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, boards)
}

// GetBoard godoc
// @Summary 看板详情
// @Description 列和卡片按 position 排序
// @Tags 看板
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "看板ID"
// @Success 200 {object} util.Response{data=model.KanbanBoard}
// @Router /api/boards/{id} [get]
func (c *KanbanController) GetBoard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	board, err := c.KanbanService.GetBoard(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// UpdateBoard godoc
// @Summary 重命名看板
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "看板ID"
// @Param body body service.UpdateBoardRequest true "看板信息"
// @Success 200 {object} util.Response{data=model.KanbanBoard}
// @Router /api/boards/{id} [put]
func (c *KanbanController) UpdateBoard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateBoardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	board, err := c.KanbanService.UpdateBoard(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// DeleteBoard godoc
// @Summary 删除看板
// @Tags 看板
// @Security ApiKeyAuth
// @Param id path string true "看板ID"
// @Success 204
// @Router /api/boards/{id} [delete]
func (c *KanbanController) DeleteBoard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.KanbanService.DeleteBoard(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// CreateColumn godoc
// @Summary 新增列
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "看板ID"
// @Param body body service.CreateColumnRequest true "列信息"
// @Success 201 {object} util.Response{data=model.KanbanColumn}
// @Router /api/boards/{id}/columns [post]
func (c *KanbanController) CreateColumn(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateColumnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	column, err := c.KanbanService.CreateColumn(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, column)
}

// ReorderColumns godoc
// @Summary 调整列顺序
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "看板ID"
// @Param body body service.ReorderColumnsRequest true "新的列顺序"
// @Success 200 {object} util.Response{data=[]model.KanbanColumn}
// @Router /api/boards/{id}/columns/reorder [patch]
func (c *KanbanController) ReorderColumns(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.ReorderColumnsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	columns, err := c.KanbanService.ReorderColumns(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, columns)
}

// UpdateColumn godoc
// @Summary 更新列
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "列ID"
// @Param body body service.UpdateColumnRequest true "列信息"
// @Success 200 {object} util.Response{data=model.KanbanColumn}
// @Router /api/columns/{id} [put]
func (c *KanbanController) UpdateColumn(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateColumnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	column, err := c.KanbanService.UpdateColumn(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, column)
}

// DeleteColumn godoc
// @Summary 删除列
// @Description 列中还有卡片时返回 400
// @Tags 看板
// @Security ApiKeyAuth
// @Param id path string true "列ID"
// @Success 204
// @Router /api/columns/{id} [delete]
func (c *KanbanController) DeleteColumn(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.KanbanService.DeleteColumn(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// CreateCard godoc
// @Summary 新建卡片
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "列ID"
// @Param body body service.CreateCardRequest true "卡片信息"
// @Success 201 {object} util.Response{data=model.KanbanCard}
// @Router /api/columns/{id}/cards [post]
func (c *KanbanController) CreateCard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.KanbanService.CreateCard(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, card)
}

// UpdateCard godoc
// @Summary 更新卡片
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "卡片ID"
// @Param body body service.UpdateCardRequest true "卡片信息"
// @Success 200 {object} util.Response{data=model.KanbanCard}
// @Router /api/cards/{id} [put]
func (c *KanbanController) UpdateCard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.KanbanService.UpdateCard(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, card)
}

// DeleteCard godoc
// @Summary 删除卡片
// @Tags 看板
// @Security ApiKeyAuth
// @Param id path string true "卡片ID"
// @Success 204
// @Router /api/cards/{id} [delete]
func (c *KanbanController) DeleteCard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.KanbanService.DeleteCard(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// MoveCard godoc
// @Summary 移动卡片
// @Description 目标列必须在同一看板，超过 WIP 上限时返回 400
// @Tags 看板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "卡片ID"
// @Param body body service.MoveCardRequest true "目标列和位置"
// @Success 200 {object} util.Response{data=model.KanbanCard}
// @Router /api/cards/{id}/move [patch]
func (c *KanbanController) MoveCard(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.MoveCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.KanbanService.MoveCard(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, card)
}
