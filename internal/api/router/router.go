package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"testhub/internal/api/handler"
	"testhub/internal/api/middleware"
	"testhub/internal/pkg/auth"
	"testhub/internal/pkg/config"
	"testhub/internal/repository"
	"testhub/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	tagRepo := repository.NewTagRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	testCaseRepo := repository.NewTestCaseRepository(db)
	testRunRepo := repository.NewTestRunRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// 初始化Service
	authService := service.NewAuthService(&cfg.Auth, db, userRepo, sessionRepo)
	invitationService := service.NewInvitationService(invitationRepo, cfg.Auth.InvitationTTL())
	userService := service.NewUserService(userRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo)
	tagService := service.NewTagService(tagRepo)
	requirementService := service.NewRequirementService(requirementRepo, userRepo)
	testCaseService := service.NewTestCaseService(testCaseRepo, requirementRepo, userRepo)
	testRunService := service.NewTestRunService(testRunRepo, userRepo)
	commentService := service.NewCommentService(commentRepo)
	attachmentService := service.NewAttachmentService(attachmentRepo)
	reportService := service.NewReportService(reportRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(&cfg.Auth, authService, invitationService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	userHandler := handler.NewUserHandler(userService, requirementService, testCaseService, testRunService)
	requirementHandler := handler.NewRequirementHandler(requirementService, tagService, testCaseService, commentService, attachmentService)
	testCaseHandler := handler.NewTestCaseHandler(testCaseService)
	testRunHandler := handler.NewTestRunHandler(testRunService, attachmentService)
	tagHandler := handler.NewTagHandler(tagService)
	commentHandler := handler.NewCommentHandler(commentService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	reportHandler := handler.NewReportHandler(reportService)
	settingsHandler := handler.NewSettingsHandler(preferenceService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 无需登录
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
		}
		v1.GET("/invitations/:code/validate", authHandler.ValidateInvitation)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(authService, cfg.Auth.Session.CookieName))
		{
			authed.POST("/auth/logout", authHandler.Logout)
			authed.GET("/auth/me", authHandler.GetMe)

			// 管理员
			admin := authed.Group("/admin")
			{
				admin.POST("/invitations", guarded(auth.PermInvitationManage, invitationHandler.Generate)...)
				admin.GET("/invitations", guarded(auth.PermInvitationManage, invitationHandler.List)...)

				users := admin.Group("/users", middleware.RequirePermission(auth.PermUserManage))
				{
					users.GET("", userHandler.List)
					users.POST("", userHandler.Create)
					users.GET("/lookup", userHandler.Lookup)
					users.GET("/:id", userHandler.GetByID)
					users.PUT("/:id", userHandler.Update)
					users.DELETE("/:id", userHandler.Delete)
				}
			}

			// 用户名下的数据
			authed.GET("/users/:id/requirements", userHandler.ListRequirements)
			authed.GET("/users/:id/test-cases", userHandler.ListTestCases)
			authed.GET("/users/:id/test-runs", userHandler.ListTestRuns)

			// 需求
			requirements := authed.Group("/requirements")
			{
				requirements.GET("", requirementHandler.List)
				requirements.POST("", guarded(auth.PermRequirementWrite, requirementHandler.Create)...)
				requirements.GET("/:id", requirementHandler.GetByID)
				requirements.PUT("/:id", guarded(auth.PermRequirementWrite, requirementHandler.Update)...)
				requirements.DELETE("/:id", guarded(auth.PermRequirementWrite, requirementHandler.Delete)...)

				requirements.GET("/:id/tags", requirementHandler.ListTags)
				requirements.POST("/:id/tags/:tagId", guarded(auth.PermRequirementWrite, requirementHandler.AddTag)...)
				requirements.DELETE("/:id/tags/:tagId", guarded(auth.PermRequirementWrite, requirementHandler.RemoveTag)...)
				requirements.POST("/:id/related/:relatedId", guarded(auth.PermRequirementWrite, requirementHandler.AddRelated)...)
				requirements.DELETE("/:id/related/:relatedId", guarded(auth.PermRequirementWrite, requirementHandler.RemoveRelated)...)

				requirements.GET("/:id/test-cases", requirementHandler.ListTestCases)
				requirements.GET("/:id/comments", requirementHandler.ListComments)
				requirements.POST("/:id/comments", guarded(auth.PermCommentWrite, requirementHandler.AddComment)...)
				requirements.GET("/:id/attachments", requirementHandler.ListAttachments)
			}

			// 用例
			testCases := authed.Group("/test-cases")
			{
				testCases.GET("", testCaseHandler.List)
				testCases.POST("", guarded(auth.PermTestCaseWrite, testCaseHandler.Create)...)
				testCases.POST("/bulk-delete", guarded(auth.PermTestCaseWrite, testCaseHandler.BulkDelete)...)
				testCases.POST("/bulk-update", guarded(auth.PermTestCaseWrite, testCaseHandler.BulkUpdate)...)
				testCases.GET("/:id", testCaseHandler.GetByID)
				testCases.PUT("/:id", guarded(auth.PermTestCaseWrite, testCaseHandler.Update)...)
				testCases.DELETE("/:id", guarded(auth.PermTestCaseWrite, testCaseHandler.Delete)...)
				testCases.POST("/:id/requirements/:requirementId", guarded(auth.PermTestCaseWrite, testCaseHandler.AddRequirement)...)
				testCases.DELETE("/:id/requirements/:requirementId", guarded(auth.PermTestCaseWrite, testCaseHandler.RemoveRequirement)...)
			}

			// 测试执行与结果
			testRuns := authed.Group("/test-runs")
			{
				testRuns.GET("", testRunHandler.List)
				testRuns.POST("", guarded(auth.PermTestRunWrite, testRunHandler.Create)...)
				testRuns.GET("/:id", testRunHandler.GetByID)
				testRuns.PUT("/:id", guarded(auth.PermTestRunWrite, testRunHandler.Update)...)
				testRuns.DELETE("/:id", guarded(auth.PermTestRunWrite, testRunHandler.Delete)...)
				testRuns.POST("/:id/results", guarded(auth.PermTestRunWrite, testRunHandler.AddResult)...)
			}
			testResults := authed.Group("/test-results")
			{
				testResults.GET("/:id", testRunHandler.GetResult)
				testResults.PUT("/:id", guarded(auth.PermTestRunWrite, testRunHandler.UpdateResult)...)
				testResults.DELETE("/:id", guarded(auth.PermTestRunWrite, testRunHandler.DeleteResult)...)
				testResults.GET("/:id/attachments", testRunHandler.ListResultAttachments)
			}

			// 标签
			tags := authed.Group("/tags")
			{
				tags.GET("", tagHandler.List)
				tags.POST("", guarded(auth.PermTagWrite, tagHandler.Create)...)
				tags.GET("/by-name/:name", tagHandler.GetByName)
				tags.GET("/:id", tagHandler.GetByID)
				tags.PUT("/:id", guarded(auth.PermTagWrite, tagHandler.Update)...)
				tags.DELETE("/:id", guarded(auth.PermTagWrite, tagHandler.Delete)...)
			}

			// 评论
			comments := authed.Group("/comments")
			{
				comments.PUT("/:id", guarded(auth.PermCommentWrite, commentHandler.Update)...)
				comments.DELETE("/:id", guarded(auth.PermCommentWrite, commentHandler.Delete)...)
			}

			// 附件
			attachments := authed.Group("/attachments")
			{
				attachments.POST("", guarded(auth.PermAttachmentWrite, attachmentHandler.Create)...)
				attachments.POST("/bulk-delete", guarded(auth.PermAttachmentWrite, attachmentHandler.BulkDelete)...)
				attachments.GET("/:id", attachmentHandler.GetByID)
				attachments.DELETE("/:id", guarded(auth.PermAttachmentWrite, attachmentHandler.Delete)...)
			}

			authed.GET("/reports/summary", guarded(auth.PermReportView, reportHandler.Summary)...)

			// 个人设置
			authed.GET("/settings/theme", settingsHandler.GetTheme)
			authed.PUT("/settings/theme", guarded(auth.PermSettingsWrite, settingsHandler.SetTheme)...)
		}
	}

	return r
}
