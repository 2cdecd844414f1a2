package app

import (
	"context"
	"freelance_hub_backend/internal/config"
	"freelance_hub_backend/internal/controller"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/service"
	"freelance_hub_backend/pkg/configwatcher"
	"freelance_hub_backend/pkg/database"
	"freelance_hub_backend/pkg/logger"
	"freelance_hub_backend/pkg/monitoring"
	"freelance_hub_backend/pkg/security"
	"freelance_hub_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configPath = "configs/config.yaml"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	rateLimiter     *security.RateLimiter
	origins         *security.OriginWhitelist
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        repository.UserRepository
	category    repository.CategoryRepository
	resource    repository.ResourceRepository
	progress    repository.ProgressRepository
	engagement  repository.EngagementRepository
	comment     repository.CommentRepository
	project     repository.ProjectRepository
	deliverable repository.DeliverableRepository
	document    repository.DocumentRepository
	kanban      repository.KanbanRepository
	meeting     repository.MeetingRepository
}

type services struct {
	storage     *service.StorageService
	auth        *service.AuthService
	category    *service.CategoryService
	resource    *service.ResourceService
	progress    *service.ProgressService
	engagement  *service.EngagementService
	comment     *service.CommentService
	project     *service.ProjectService
	deliverable *service.DeliverableService
	document    *service.DocumentService
	kanban      *service.KanbanService
	meeting     *service.MeetingService
}

type controllers struct {
	auth        *controller.AuthController
	category    *controller.CategoryController
	resource    *controller.ResourceController
	progress    *controller.ProgressController
	engagement  *controller.EngagementController
	comment     *controller.CommentController
	project     *controller.ProjectController
	deliverable *controller.DeliverableController
	document    *controller.DocumentController
	kanban      *controller.KanbanController
	meeting     *controller.MeetingController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		category:    repository.NewCategoryRepository(db),
		resource:    repository.NewResourceRepository(db),
		progress:    repository.NewProgressRepository(db),
		engagement:  repository.NewEngagementRepository(db),
		comment:     repository.NewCommentRepository(db),
		project:     repository.NewProjectRepository(db),
		deliverable: repository.NewDeliverableRepository(db),
		document:    repository.NewDocumentRepository(db),
		kanban:      repository.NewKanbanRepository(db),
		meeting:     repository.NewMeetingRepository(db),
	}
}

// initServices rdb 可以为 nil，此时浏览去重和分类缓存退化为直接读写数据库
func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	storage := service.NewStorageService(cfg)

	return &services{
		storage:     storage,
		auth:        service.NewAuthService(repos.user, cfg),
		category:    service.NewCategoryService(repos.category, rdb, cfg.Library.CategoryCacheTTL()),
		resource:    service.NewResourceService(repos.resource, repos.category, storage, rdb, cfg.Library.ViewDedupWindow()),
		progress:    service.NewProgressService(repos.progress, repos.resource),
		engagement:  service.NewEngagementService(repos.engagement, repos.resource),
		comment:     service.NewCommentService(repos.comment, repos.resource),
		project:     service.NewProjectService(repos.project, repos.user, repos.document, storage),
		deliverable: service.NewDeliverableService(repos.deliverable, repos.project),
		document:    service.NewDocumentService(repos.document, repos.project, storage),
		kanban:      service.NewKanbanService(repos.kanban, repos.project),
		meeting:     service.NewMeetingService(repos.meeting, repos.project),
	}
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		category:    controller.NewCategoryController(s.category),
		resource:    controller.NewResourceController(s.resource),
		progress:    controller.NewProgressController(s.progress),
		engagement:  controller.NewEngagementController(s.engagement),
		comment:     controller.NewCommentController(s.comment),
		project:     controller.NewProjectController(s.project),
		deliverable: controller.NewDeliverableController(s.deliverable),
		document:    controller.NewDocumentController(s.document),
		kanban:      controller.NewKanbanController(s.kanban),
		meeting:     controller.NewMeetingController(s.meeting),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginWhitelist(cfg.CORS.AllowedOrigins)
	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())

	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		a.origins.Update(newCfg.CORS.AllowedOrigins)
		a.rateLimiter.Update(newCfg.RateLimit.MaxRequests, newCfg.RateLimit.Window())
		logger.SetLevel(newCfg.Server.Mode)
	})
}

// NewEngine 组装路由，不依赖外部连接，测试里可以直接传入 sqlite
func (a *App) NewEngine(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	repos := initRepositories(db)
	svc := initServices(repos, a.Config, rdb)
	ctrls := initControllers(svc, db, rdb)

	monitoring.Init()

	gin.SetMode(a.Config.Server.Mode)
	router := gin.New()
	router.Use(ginLogger(), gin.Recovery())
	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, ctrls, a.Config)

	if a.Config.Storage.Type == "local" {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}
	return router
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认跳过自动迁移，需显式指定 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{Config: cfg, DB: db}
	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	app.Router = app.NewEngine(db, app.Redis)
	return app
}

func (a *App) watchConfig(ctx context.Context) {
	path, err := filepath.Abs(configPath)
	if err != nil {
		logger.Log.Warn("Config watcher disabled", zap.Error(err))
		return
	}
	w := configwatcher.New(path, func(newCfg *config.Config) {
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	a.watchConfig(watchCtx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.rateLimiter.Stop()
	if err := tracing.Shutdown(ctx, a.tracer); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}

// ginLogger 用 zap 记录访问日志
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
