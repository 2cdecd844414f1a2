package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// ListComments godoc
// @Summary 资源评论列表
// @Description 评论按时间倒序，回复按时间正序，附带表情统计
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/resources/{id}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	p := util.GetPagination(ctx)
	comments, total, err := c.CommentService.ListComments(ctx.Request.Context(), identity, ctx.Param("id"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Page(ctx, comments, total, p)
}

// CreateComment godoc
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Param body body service.CommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.ResourceComment}
// @Router /api/resources/{id}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.CreateComment(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// UpdateComment godoc
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "评论ID"
// @Param body body service.CommentRequest true "评论内容"
// @Success 200 {object} util.Response{data=model.ResourceComment}
// @Failure 400 {object} util.Response "不是自己的评论"
// @Router /api/comments/{id} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.UpdateComment(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, comment)
}

// DeleteComment godoc
// @Summary 删除评论
// @Tags 评论
// @Security ApiKeyAuth
// @Param id path string true "评论ID"
// @Success 204
// @Router /api/comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.CommentService.DeleteComment(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// CreateReply godoc
// @Summary 回复评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "评论ID"
// @Param body body service.CommentRequest true "回复内容"
// @Success 201 {object} util.Response{data=model.CommentReply}
// @Router /api/comments/{id}/replies [post]
func (c *CommentController) CreateReply(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.CommentService.CreateReply(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, reply)
}

// UpdateReply godoc
// @Summary 修改回复
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "回复ID"
// @Param body body service.CommentRequest true "回复内容"
// @Success 200 {object} util.Response{data=model.CommentReply}
// @Router /api/replies/{id} [put]
func (c *CommentController) UpdateReply(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.CommentService.UpdateReply(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, reply)
}

// DeleteReply godoc
// @Summary 删除回复
// @Tags 评论
// @Security ApiKeyAuth
// @Param id path string true "回复ID"
// @Success 204
// @Router /api/replies/{id} [delete]
func (c *CommentController) DeleteReply(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.CommentService.DeleteReply(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ToggleCommentReaction godoc
// @Summary 评论表情
// @Tags 表情
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "评论ID"
// @Param body body service.ReactionRequest true "表情类型"
// @Success 200 {object} util.Response{data=service.ReactionResult}
// @Router /api/comments/{id}/reactions [post]
func (c *CommentController) ToggleCommentReaction(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.ReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CommentService.ToggleCommentReaction(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ToggleReplyReaction godoc
// @Summary 回复表情
// @Tags 表情
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "回复ID"
// @Param body body service.ReactionRequest true "表情类型"
// @Success 200 {object} util.Response{data=service.ReactionResult}
// @Router /api/replies/{id}/reactions [post]
func (c *CommentController) ToggleReplyReaction(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.ReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CommentService.ToggleReplyReaction(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ToggleReaction godoc
// @Summary 通用表情接口
// @Description commentId 和 replyId 必须且只能给一个
// @Tags 表情
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ToggleReactionRequest true "目标和表情类型"
// @Success 200 {object} util.Response{data=service.ReactionResult}
// @Failure 400 {object} util.Response
// @Router /api/reactions [post]
func (c *CommentController) ToggleReaction(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.ToggleReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CommentService.ToggleReaction(ctx.Request.Context(), identity, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
