package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"CourseForge/internal/delivery/http/controllers"
	authctrl "CourseForge/internal/delivery/http/controllers/auth"
	"CourseForge/internal/delivery/http/controllers/middleware"
	wizardctrl "CourseForge/internal/delivery/http/controllers/wizard"
	"CourseForge/internal/models"
	"CourseForge/internal/service"
	"CourseForge/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := authctrl.NewAuthHandler(l, u.AuthService)
	catalogController := controllers.NewCatalogHandler(l, u.Catalog)
	wizardController := wizardctrl.NewWizardHandler(l, u.WizardService, u.OutlineService, u.MediaStorage)
	authMW := middleware.NewAuthMiddlewareProvider(l, u.AuthService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authMW.AuthMiddleware, authController.Me)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
		}

		v1.GET("/courses/search", catalogController.SearchCourses)

		wizard := v1.Group("/wizard", authMW.AuthMiddleware, middleware.RequireRoles(models.TeacherRole, models.AdminRole))
		{
			wizard.POST("", wizardController.StartWizard)
			wizard.GET("/:session_id", wizardController.GetWizard)
			wizard.DELETE("/:session_id", wizardController.AbandonWizard)

			wizard.POST("/:session_id/advance", wizardController.Advance)
			wizard.POST("/:session_id/retreat", wizardController.Retreat)
			wizard.POST("/:session_id/reset", wizardController.Reset)

			wizard.PUT("/:session_id/course", wizardController.SetBasicInfo)

			wizard.POST("/:session_id/modules", wizardController.AddModule)
			wizard.PATCH("/:session_id/modules/:module_id", wizardController.UpdateModule)
			wizard.DELETE("/:session_id/modules/:module_id", wizardController.RemoveModule)

			wizard.POST("/:session_id/modules/:module_id/lessons", wizardController.AddLesson)
			wizard.PATCH("/:session_id/lessons/:lesson_id", wizardController.UpdateLesson)
			wizard.DELETE("/:session_id/lessons/:lesson_id", wizardController.RemoveLesson)

			wizard.POST("/:session_id/lessons/:lesson_id/media", wizardController.UploadMedia)
			wizard.DELETE("/:session_id/media/:media_id", wizardController.RemoveMedia)

			wizard.POST("/:session_id/lessons/:lesson_id/quizzes", wizardController.AddQuiz)
			wizard.PATCH("/:session_id/quizzes/:quiz_id", wizardController.UpdateQuiz)
			wizard.DELETE("/:session_id/quizzes/:quiz_id", wizardController.RemoveQuiz)

			wizard.POST("/:session_id/quizzes/:quiz_id/questions", wizardController.AddQuestion)
			wizard.PATCH("/:session_id/questions/:question_id", wizardController.UpdateQuestion)
			wizard.DELETE("/:session_id/questions/:question_id", wizardController.RemoveQuestion)

			wizard.POST("/:session_id/questions/:question_id/options", wizardController.AddOption)
			wizard.PATCH("/:session_id/options/:option_id", wizardController.UpdateOption)
			wizard.DELETE("/:session_id/options/:option_id", wizardController.RemoveOption)

			wizard.POST("/:session_id/publish", wizardController.Publish)
			wizard.POST("/:session_id/draft", wizardController.SaveAsDraft)
		}
	}
	return r
}
