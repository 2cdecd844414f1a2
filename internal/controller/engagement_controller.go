package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EngagementController struct {
	EngagementService *service.EngagementService
}

func NewEngagementController(engagementService *service.EngagementService) *EngagementController {
	return &EngagementController{EngagementService: engagementService}
}

// ToggleFavorite godoc
// @Summary 收藏/取消收藏
// @Tags 收藏置顶
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Success 200 {object} util.Response{data=service.ToggleResult}
// @Failure 404 {object} util.Response
// @Router /api/resources/{id}/favorite [post]
func (c *EngagementController) ToggleFavorite(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	result, err := c.EngagementService.ToggleFavorite(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// TogglePin godoc
// @Summary 置顶/取消置顶
// @Tags 收藏置顶
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资源ID"
// @Success 200 {object} util.Response{data=service.ToggleResult}
// @Failure 404 {object} util.Response
// @Router /api/resources/{id}/pin [post]
func (c *EngagementController) TogglePin(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	result, err := c.EngagementService.TogglePin(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListFavorites godoc
// @Summary 我的收藏
// @Tags 收藏置顶
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Favorite}
// @Router /api/favorites [get]
func (c *EngagementController) ListFavorites(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	favorites, err := c.EngagementService.ListFavorites(ctx.Request.Context(), identity)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, favorites)
}

// ListPins godoc
// @Summary 我的置顶
// @Tags 收藏置顶
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Pin}
// @Router /api/pins [get]
func (c *EngagementController) ListPins(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	pins, err := c.EngagementService.ListPins(ctx.Request.Context(), identity)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, pins)
}
