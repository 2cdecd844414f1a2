package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// ListCategories godoc
// @Summary 分类列表
// @Description 默认只返回启用的分类，管理员可以传 includeInactive=true
// @Tags 分类
// @Produce json
// @Security ApiKeyAuth
// @Param includeInactive query bool false "包含停用分类"
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	categories, err := c.CategoryService.List(ctx.Request.Context(), identity, util.ParseBool(ctx.Query("includeInactive")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// GetCategory godoc
// @Summary 分类详情
// @Tags 分类
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "分类ID"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 404 {object} util.Response
// @Router /api/categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	category, err := c.CategoryService.Get(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// CreateCategory godoc
// @Summary 创建分类
// @Tags 分类
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCategoryRequest true "分类信息"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 400 {object} util.Response "名称重复"
// @Router /api/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req service.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary 更新分类
// @Tags 分类
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "分类ID"
// @Param body body service.UpdateCategoryRequest true "分类信息"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除分类
// @Description 仍有资源引用时返回 400
// @Tags 分类
// @Security ApiKeyAuth
// @Param id path string true "分类ID"
// @Success 204
// @Failure 400 {object} util.Response
// @Router /api/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.CategoryService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// DeactivateCategory godoc
// @Summary 停用分类
// @Tags 分类
// @Security ApiKeyAuth
// @Param id path string true "分类ID"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/categories/{id}/deactivate [patch]
func (c *CategoryController) DeactivateCategory(ctx *gin.Context) {
	c.setActive(ctx, false)
}

// ActivateCategory godoc
// @Summary 启用分类
// @Tags 分类
// @Security ApiKeyAuth
// @Param id path string true "分类ID"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/categories/{id}/activate [patch]
func (c *CategoryController) ActivateCategory(ctx *gin.Context) {
	c.setActive(ctx, true)
}

func (c *CategoryController) setActive(ctx *gin.Context, active bool) {
	category, err := c.CategoryService.SetActive(ctx.Request.Context(), ctx.Param("id"), active)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}
