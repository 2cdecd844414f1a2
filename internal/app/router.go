package app

import (
	"freelance_hub_backend/docs"
	"freelance_hub_backend/internal/config"
	"freelance_hub_backend/internal/middleware"
	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerLibraryRoutes(authGroup, c)
		a.registerProjectRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}
	}
}

func (a *App) registerLibraryRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/profile", c.auth.GetProfile)

	categories := rg.Group("/categories")
	{
		categories.GET("", c.category.ListCategories)
		categories.GET("/:id", c.category.GetCategory)
	}

	resources := rg.Group("/resources")
	{
		resources.GET("", c.resource.ListResources)
		resources.GET("/:id", c.resource.GetResource)

		// 学习进度
		resources.PATCH("/:id/progress", c.progress.UpdateProgress)
		resources.GET("/:id/progress", c.progress.GetProgress)

		// 收藏和置顶
		resources.POST("/:id/favorite", c.engagement.ToggleFavorite)
		resources.POST("/:id/pin", c.engagement.TogglePin)

		resources.GET("/:id/comments", c.comment.ListComments)
		resources.POST("/:id/comments", c.comment.CreateComment)
	}

	rg.GET("/progress", c.progress.ListProgress)
	rg.GET("/certificates", c.progress.ListCertificates)
	rg.GET("/certificates/:id", c.progress.GetCertificate)
	rg.GET("/favorites", c.engagement.ListFavorites)
	rg.GET("/pins", c.engagement.ListPins)

	comments := rg.Group("/comments")
	{
		comments.PUT("/:id", c.comment.UpdateComment)
		comments.DELETE("/:id", c.comment.DeleteComment)
		comments.POST("/:id/replies", c.comment.CreateReply)
		comments.POST("/:id/reactions", c.comment.ToggleCommentReaction)
	}

	replies := rg.Group("/replies")
	{
		replies.PUT("/:id", c.comment.UpdateReply)
		replies.DELETE("/:id", c.comment.DeleteReply)
		replies.POST("/:id/reactions", c.comment.ToggleReplyReaction)
	}

	rg.POST("/reactions", c.comment.ToggleReaction)
}

func (a *App) registerProjectRoutes(rg *gin.RouterGroup, c *controllers) {
	projects := rg.Group("/projects")
	{
		projects.POST("", c.project.CreateProject)
		projects.GET("", c.project.ListProjects)
		projects.GET("/:id", c.project.GetProject)
		projects.PUT("/:id", c.project.UpdateProject)
		projects.PATCH("/:id/assign", c.project.AssignFreelancer)
		projects.DELETE("/:id", c.project.DeleteProject)

		projects.POST("/:id/deliverables", c.deliverable.CreateDeliverable)
		projects.GET("/:id/deliverables", c.deliverable.ListDeliverables)

		projects.POST("/:id/folders", c.document.CreateFolder)
		projects.GET("/:id/folders", c.document.ListFolders)
		projects.POST("/:id/documents", c.document.UploadDocument)
		projects.GET("/:id/documents", c.document.ListDocuments)

		projects.POST("/:id/boards", c.kanban.CreateBoard)
		projects.GET("/:id/boards", c.kanban.ListBoards)

		projects.POST("/:id/meetings", c.meeting.CreateMeeting)
		projects.GET("/:id/meetings", c.meeting.ListMeetings)
	}

	deliverables := rg.Group("/deliverables")
	{
		deliverables.GET("/:id", c.deliverable.GetDeliverable)
		deliverables.PUT("/:id", c.deliverable.UpdateDeliverable)
		deliverables.DELETE("/:id", c.deliverable.DeleteDeliverable)
		deliverables.PATCH("/:id/start", c.deliverable.StartDeliverable)
		deliverables.POST("/:id/review", c.deliverable.SubmitForReview)
		deliverables.POST("/:id/approve", c.deliverable.ApproveDeliverable)
		deliverables.POST("/:id/revision", c.deliverable.RequestRevision)
	}

	folders := rg.Group("/folders")
	{
		folders.PUT("/:id", c.document.UpdateFolder)
		folders.DELETE("/:id", c.document.DeleteFolder)
	}

	documents := rg.Group("/documents")
	{
		documents.GET("/:id", c.document.GetDocument)
		documents.PUT("/:id", c.document.UpdateDocument)
		documents.DELETE("/:id", c.document.DeleteDocument)
	}

	boards := rg.Group("/boards")
	{
		boards.GET("/:id", c.kanban.GetBoard)
		boards.PUT("/:id", c.kanban.UpdateBoard)
		boards.DELETE("/:id", c.kanban.DeleteBoard)
		boards.POST("/:id/columns", c.kanban.CreateColumn)
		boards.PATCH("/:id/columns/reorder", c.kanban.ReorderColumns)
	}

	columns := rg.Group("/columns")
	{
		columns.PUT("/:id", c.kanban.UpdateColumn)
		columns.DELETE("/:id", c.kanban.DeleteColumn)
		columns.POST("/:id/cards", c.kanban.CreateCard)
	}

	cards := rg.Group("/cards")
	{
		cards.PUT("/:id", c.kanban.UpdateCard)
		cards.DELETE("/:id", c.kanban.DeleteCard)
		cards.PATCH("/:id/move", c.kanban.MoveCard)
	}

	meetings := rg.Group("/meetings")
	{
		meetings.GET("/:id", c.meeting.GetMeeting)
		meetings.PUT("/:id", c.meeting.UpdateMeeting)
		meetings.DELETE("/:id", c.meeting.DeleteMeeting)
		meetings.PATCH("/:id/cancel", c.meeting.CancelMeeting)
		meetings.PATCH("/:id/complete", c.meeting.CompleteMeeting)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/resources/all", c.resource.ListAllResources)
		admin.POST("/resources", c.resource.CreateResource)
		admin.PUT("/resources/:id", c.resource.UpdateResource)
		admin.DELETE("/resources/:id", c.resource.DeleteResource)
		admin.POST("/resources/:id/attachments", c.resource.UploadAttachment)

		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)
		admin.PATCH("/categories/:id/deactivate", c.category.DeactivateCategory)
		admin.PATCH("/categories/:id/activate", c.category.ActivateCategory)
	}
}
