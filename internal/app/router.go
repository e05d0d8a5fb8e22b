package app

import (
	"micro_tutor_backend/docs"
	"micro_tutor_backend/internal/middleware"
	"micro_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	api.Use(middleware.RequestID(), middleware.UserContext(), middleware.Activity(repos.user))
	{
		// 技能
		api.POST("/skills/preview", c.skill.PreviewCurriculum)
		api.POST("/skills", c.skill.CreateSkill)
		api.GET("/skills", c.skill.ListSkills)
		api.GET("/skills/:id", c.skill.GetSkill)
		api.DELETE("/skills/:id", c.skill.DeleteSkill)
		api.GET("/skills/:id/cheatsheet", c.skill.GetCheatSheet)
		api.GET("/skills/:id/project", c.project.GetProject)

		// 课程
		api.GET("/lessons/:id", c.lesson.GetLesson)
		api.POST("/lessons/:id/generate", c.lesson.GenerateLesson)
		api.POST("/lessons/:id/complete", c.lesson.CompleteLesson)
		api.GET("/lessons/:id/quiz", c.quiz.GetQuiz)
		api.POST("/lessons/:id/quiz/generate", c.quiz.GenerateQuiz)

		// 测验
		api.POST("/quiz/grade", c.quiz.GradeAnswer)
		api.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)

		// 复习
		api.GET("/reviews/queue", c.review.GetQueue)
		api.POST("/reviews/:id/rate", c.review.RateCard)

		// 进度与成就
		api.GET("/progress", c.progress.GetProgress)
		api.GET("/progress/achievements", c.progress.GetAchievements)

		// 结业项目
		api.POST("/projects/:id/submit", c.project.SubmitProject)
		api.GET("/projects/:id/submissions", c.project.GetSubmissions)

		// 练习
		api.POST("/exercises/evaluate", c.exercise.Evaluate)

		// 导师对话
		api.POST("/chat", c.chat.Chat)
		api.GET("/chat/history/:skillId", c.chat.GetHistory)

		// 学习资源
		api.GET("/resources/papers", c.resource.SearchPapers)
	}
}
