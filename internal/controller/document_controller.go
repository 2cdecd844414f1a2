package controller

import (
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	DocumentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{DocumentService: documentService}
}

// CreateFolder godoc
// @Summary 创建目录
// @Tags 文档
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.CreateFolderRequest true "目录信息"
// @Success 201 {object} util.Response{data=model.Folder}
// @Failure 400 {object} util.Response "同级目录重名"
// @Router /api/projects/{id}/folders [post]
func (c *DocumentController) CreateFolder(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.CreateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	folder, err := c.DocumentService.CreateFolder(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, folder)
}

// ListFolders godoc
// @Summary 项目目录列表
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} util.Response{data=[]model.Folder}
// @Router /api/projects/{id}/folders [get]
func (c *DocumentController) ListFolders(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	folders, err := c.DocumentService.ListFolders(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, folders)
}

// UpdateFolder godoc
// @Summary 重命名或移动目录
// @Tags 文档
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目录ID"
// @Param body body service.UpdateFolderRequest true "目录信息"
// @Success 200 {object} util.Response{data=model.Folder}
// @Router /api/folders/{id} [put]
func (c *DocumentController) UpdateFolder(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	folder, err := c.DocumentService.UpdateFolder(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, folder)
}

// DeleteFolder godoc
// @Summary 删除目录
// @Description 只能删除空目录
// @Tags 文档
// @Security ApiKeyAuth
// @Param id path string true "目录ID"
// @Success 204
// @Router /api/folders/{id} [delete]
func (c *DocumentController) DeleteFolder(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.DocumentService.DeleteFolder(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// UploadDocument godoc
// @Summary 上传文档
// @Tags 文档
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param file formData file true "文件"
// @Param folderId formData string false "目录ID"
// @Success 201 {object} util.Response{data=model.Document}
// @Router /api/projects/{id}/documents [post]
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	document, err := c.DocumentService.UploadDocument(ctx.Request.Context(), identity, ctx.Param("id"), ctx.PostForm("folderId"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, document)
}

// ListDocuments godoc
// @Summary 项目文档列表
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param folderId query string false "目录ID"
// @Success 200 {object} util.Response{data=[]model.Document}
// @Router /api/projects/{id}/documents [get]
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	documents, err := c.DocumentService.ListDocuments(ctx.Request.Context(), identity, ctx.Param("id"), ctx.Query("folderId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, documents)
}

// GetDocument godoc
// @Summary 文档详情
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Success 200 {object} util.Response{data=model.Document}
// @Router /api/documents/{id} [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	document, err := c.DocumentService.GetDocument(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, document)
}

// UpdateDocument godoc
// @Summary 重命名或移动文档
// @Tags 文档
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Param body body service.UpdateDocumentRequest true "文档信息"
// @Success 200 {object} util.Response{data=model.Document}
// @Router /api/documents/{id} [put]
func (c *DocumentController) UpdateDocument(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	var req service.UpdateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	document, err := c.DocumentService.UpdateDocument(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, document)
}

// DeleteDocument godoc
// @Summary 删除文档
// @Description 同时删除存储中的文件
// @Tags 文档
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Success 204
// @Router /api/documents/{id} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	if err := c.DocumentService.DeleteDocument(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
