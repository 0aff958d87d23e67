package app

import (
	"github.com/Env1sage/LMS-MED-sub001/docs"
	"github.com/Env1sage/LMS-MED-sub001/internal/middleware"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"github.com/Env1sage/LMS-MED-sub001/pkg/monitoring"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
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
	authGroup.Use(middleware.AuthMiddleware(a.Config.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(util.RoleStudent))
	{
		tests := student.Group("/tests")
		{
			tests.GET("/:id", c.testAttempt.GetTestDetails)
			tests.GET("/:id/attempts", c.testAttempt.ListAttempts)
			tests.POST("/:id/attempts", c.testAttempt.StartAttempt)
		}

		attempts := student.Group("/attempts")
		{
			attempts.PUT("/:id/answers", c.testAttempt.SaveAnswer)
			attempts.POST("/:id/submit", c.testAttempt.SubmitAttempt)
			attempts.GET("/:id/results", c.testAttempt.GetAttemptResults)
		}

		practice := student.Group("/practice")
		{
			practice.POST("", c.practice.StartPractice)
			practice.GET("", c.practice.ListSessions)
			practice.POST("/:id/answers", c.practice.SubmitAnswer)
			practice.POST("/:id/complete", c.practice.CompleteSession)
		}
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(util.RoleTeacher))
	{
		admin.DELETE("/attempts/:id", c.testAttempt.ResetAttempt)
	}
}
