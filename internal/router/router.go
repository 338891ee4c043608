// Package router wires handlers, services and repositories into the
// HTTP routing tree.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qa-checklist-api/internal/cache"
	"qa-checklist-api/internal/client"
	"qa-checklist-api/internal/config"
	"qa-checklist-api/internal/handler"
	"qa-checklist-api/internal/metrics"
	"qa-checklist-api/internal/middleware"
	"qa-checklist-api/internal/repository"
	"qa-checklist-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	S3Client       client.S3ClientInterface
	AuthClient     client.AuthClientInterface
	AuthConfig     *config.AuthConfig
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Ops endpoints live at the root and under the base path so both
	// the ingress probes and the gateway-routed paths work.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	projectRepo := repository.NewProjectRepository(cfg.DB)
	moduleRepo := repository.NewModuleRepository(cfg.DB)
	checklistRepo := repository.NewChecklistRepository(cfg.DB)
	testerRepo := repository.NewTesterRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	progressCache := cache.NewRedisProgressCache(cfg.Redis, cfg.Logger)

	// Services
	projectService := service.NewProjectService(projectRepo, cfg.Metrics, cfg.Logger)
	moduleService := service.NewModuleService(moduleRepo, cfg.Metrics, cfg.Logger)
	checklistService := service.NewChecklistService(checklistRepo, projectRepo, moduleRepo, testerRepo, progressCache, cfg.Metrics, cfg.Logger)
	testerService := service.NewTesterService(testerRepo, projectRepo, checklistRepo, progressCache, cfg.Logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, checklistRepo, cfg.S3Client, cfg.Logger)

	// Handlers
	projectHandler := handler.NewProjectHandler(projectService)
	moduleHandler := handler.NewModuleHandler(moduleService)
	checklistHandler := handler.NewChecklistHandler(checklistService)
	testerHandler := handler.NewTesterHandler(testerService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)

	api := r.Group(cfg.BasePath)

	if cfg.BasePath != "" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
	}

	// Identity-provider callback stays unauthenticated
	if cfg.AuthClient != nil && cfg.AuthConfig != nil {
		authHandler := handler.NewAuthHandler(cfg.AuthClient, cfg.AuthConfig)
		api.GET("/auth/callback", authHandler.Callback)
	}

	var authMiddleware gin.HandlerFunc
	if cfg.AuthClient != nil {
		authMiddleware = middleware.AuthWithValidator(cfg.AuthClient)
	} else {
		authMiddleware = middleware.Auth(cfg.JWTSecret)
	}

	projects := api.Group("/projects")
	projects.Use(authMiddleware)
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("", projectHandler.GetProjects)
		projects.GET("/archive", projectHandler.GetArchivedProjects)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.PUT("/:projectId", projectHandler.UpdateProject)
		projects.DELETE("/:projectId", projectHandler.ArchiveProject)
		projects.POST("/:projectId/restore", projectHandler.RestoreProject)
		projects.DELETE("/:projectId/permanent", projectHandler.PermanentDeleteProject)

		// Tester assignments
		projects.GET("/:projectId/testers", testerHandler.GetProjectTesters)
		projects.POST("/:projectId/testers", testerHandler.AssignTesters)
		projects.DELETE("/:projectId/testers/:testerId", testerHandler.UnassignTester)

		// Project checklist
		projects.GET("/:projectId/checklist", checklistHandler.GetChecklist)
		projects.GET("/:projectId/checklist/progress", checklistHandler.GetProgress)
		projects.POST("/:projectId/checklist/reorder", checklistHandler.ReorderChecklist)
		projects.PUT("/:projectId/checklist/results/:resultId", checklistHandler.UpdateResult)
	}

	modules := api.Group("/modules")
	modules.Use(authMiddleware)
	{
		modules.POST("", moduleHandler.CreateModule)
		modules.GET("", moduleHandler.GetModules)
		modules.PUT("/reorder", moduleHandler.ReorderModules)
		modules.GET("/:moduleId", moduleHandler.GetModule)
		modules.PUT("/:moduleId", moduleHandler.UpdateModule)
		modules.DELETE("/:moduleId", moduleHandler.DeleteModule)

		// Module test cases
		modules.POST("/:moduleId/testcases", moduleHandler.AddTestCase)
		modules.PUT("/:moduleId/testcases/reorder", moduleHandler.ReorderTestCases)
		modules.PUT("/testcases/:testCaseId", moduleHandler.UpdateTestCase)
		modules.DELETE("/testcases/:testCaseId", moduleHandler.DeleteTestCase)
	}

	checklists := api.Group("/checklists")
	checklists.Use(authMiddleware)
	{
		checklists.POST("/modules", checklistHandler.AttachModule)
		checklists.DELETE("/modules/:checklistModuleId", checklistHandler.DetachModule)
		checklists.POST("/modules/:checklistModuleId/testcases", checklistHandler.AddCustomTestCase)
	}

	testers := api.Group("/testers")
	testers.Use(authMiddleware)
	{
		testers.POST("", testerHandler.CreateTester)
		testers.GET("", testerHandler.GetTesters)
		testers.PUT("/:testerId", testerHandler.UpdateTester)
		testers.DELETE("/:testerId", testerHandler.DeleteTester)
	}

	results := api.Group("/test-results")
	results.Use(authMiddleware)
	{
		results.POST("/:resultId/attachments", attachmentHandler.UploadAttachment)
		results.GET("/:resultId/attachments", attachmentHandler.GetAttachments)
		results.DELETE("/:resultId/attachments/:attachmentId", attachmentHandler.DeleteAttachment)
	}

	return r
}
