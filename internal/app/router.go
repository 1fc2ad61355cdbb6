package app

import (
	"assessment_engine/docs"
	"assessment_engine/internal/config"
	"assessment_engine/internal/middleware"
	"assessment_engine/internal/model"
	"assessment_engine/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(r *gin.RouterGroup, c *controllers) {
	evaluations := r.Group("/evaluations")
	{
		evaluations.GET("/:id", c.evaluation.GetForAttempt)
		evaluations.GET("/:id/eligibility", c.evaluation.Eligibility)
		evaluations.POST("/:id/take", c.attempt.TakeEvaluation)
		evaluations.POST("/:id/attempts", c.attempt.StartAttempt)
		evaluations.GET("/:id/my-attempts", c.result.ListMyAttempts)
		evaluations.POST("/:id/request-reopen", c.reopen.RequestReopen)
	}

	attempts := r.Group("/attempts")
	{
		attempts.POST("/:id/submit", c.attempt.SubmitAnswers)
		attempts.GET("/:id/result", c.result.GetAttemptResult)
	}

	r.GET("/reopen-requests/mine", c.reopen.ListMine)
}

// registerTeacherRoutes 角色过滤之外，服务层还会校验是否为该课程的授课教师
func (a *App) registerTeacherRoutes(r *gin.RouterGroup, c *controllers) {
	teacher := r.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		teacher.POST("/sections/:sectionId/evaluations", c.evaluation.CreateEvaluation)
		teacher.GET("/sections/:sectionId/evaluations", c.evaluation.ListSectionEvaluations)

		teacher.GET("/evaluations/:id", c.evaluation.GetEvaluation)
		teacher.PUT("/evaluations/:id", c.evaluation.UpdateEvaluation)
		teacher.DELETE("/evaluations/:id", c.evaluation.DeleteEvaluation)
		teacher.POST("/evaluations/:id/questions", c.evaluation.AddQuestion)
		teacher.PUT("/questions/:id", c.evaluation.UpdateQuestion)
		teacher.DELETE("/questions/:id", c.evaluation.DeleteQuestion)

		teacher.GET("/evaluations/:id/attempts", c.result.ListAttempts)
		teacher.GET("/evaluations/:id/stats", c.result.Stats)
		teacher.POST("/evaluations/:id/attempts/export", c.result.ExportAttempts)

		teacher.GET("/evaluations/:id/reopen-requests", c.reopen.ListForEvaluation)
		teacher.POST("/reopen-requests/:id/approve", c.reopen.Approve)
		teacher.POST("/reopen-requests/:id/reject", c.reopen.Reject)
	}
}
