package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MeetingController struct {
	MeetingService *service.MeetingService
}

func NewMeetingController(meetingService *service.MeetingService) *MeetingController {
	return &MeetingController{MeetingService: meetingService}
}

// CreateMeeting godoc
// @Summary 安排会议
// @Tags 会议
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.CreateMeetingRequest true "会议信息"
// @Success 201 {object} util.Response{data=model.Meeting}
// @Failure 400 {object} util.Response "结束时间早于开始时间或参会人不是项目成员"
// @Router /api/projects/{id}/meetings [post]
func (c *MeetingController) CreateMeeting(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	meeting, err := c.MeetingService.Create(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, meeting)
}

// ListMeetings godoc
// @Summary 项目会议列表
// @Tags 会议
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param upcoming query bool false "只看未开始的会议"
// @Success 200 {object} util.Response{data=[]model.Meeting}
// @Router /api/projects/{id}/meetings [get]
func (c *MeetingController) ListMeetings(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	meetings, err := c.MeetingService.List(ctx.Request.Context(), identity, ctx.Param("id"), util.ParseBool(ctx.Query("upcoming")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, meetings)
}

// GetMeeting godoc
// @Summary 会议详情
// @Tags 会议
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会议ID"
// @Success 200 {object} util.Response{data=model.Meeting}
// @Router /api/meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	meeting, err := c.MeetingService.Get(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, meeting)
}

// UpdateMeeting godoc
// @Summary 修改会议
// @Description 只有组织者或管理员可以修改，attendeeIds 存在时整体替换参会人
// @Tags 会议
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会议ID"
// @Param body body service.UpdateMeetingRequest true "会议信息"
// @Success 200 {object} util.Response{data=model.Meeting}
// @Router /api/meetings/{id} [put]
func (c *MeetingController) UpdateMeeting(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	meeting, err := c.MeetingService.Update(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, meeting)
}

// DeleteMeeting godoc
// @Summary 删除会议
// @Tags 会议
// @Security ApiKeyAuth
// @Param id path string true "会议ID"
// @Success 204
// @Router /api/meetings/{id} [delete]
func (c *MeetingController) DeleteMeeting(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.MeetingService.Delete(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// CancelMeeting godoc
// @Summary 取消会议
// @Tags 会议
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会议ID"
// @Success 200 {object} util.Response{data=model.Meeting}
// @Router /api/meetings/{id}/cancel [patch]
func (c *MeetingController) CancelMeeting(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	meeting, err := c.MeetingService.Cancel(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, meeting)
}

// CompleteMeeting godoc
// @Summary 结束会议并记录纪要
// @Tags 会议
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会议ID"
// @Param body body service.CompleteMeetingRequest false "会议纪要"
// @Success 200 {object} util.Response{data=model.Meeting}
// @Router /api/meetings/{id}/complete [patch]
func (c *MeetingController) CompleteMeeting(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CompleteMeetingRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	meeting, err := c.MeetingService.Complete(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, meeting)
}
