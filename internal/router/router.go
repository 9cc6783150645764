package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AlzProject/backend/internal/config"
	"github.com/AlzProject/backend/internal/handler"
	"github.com/AlzProject/backend/internal/middleware"
	"github.com/AlzProject/backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Attempt  *handler.AttemptHandler
	Response *handler.ResponseHandler
	Grading  *handler.GradingHandler
	Report   *handler.ReportHandler
	Test     *handler.TestHandler
	Question *handler.QuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Participant Group (any authenticated caller) ───────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		api.POST("/attempts", handlers.Attempt.StartAttempt)
		api.GET("/attempts", handlers.Attempt.ListAttempts)
		api.GET("/attempts/:id", handlers.Attempt.GetAttempt)
		api.POST("/attempts/:id/submit", handlers.Attempt.SubmitAttempt)

		api.POST("/responses", handlers.Response.SubmitResponse)
		api.GET("/responses", handlers.Response.ListResponses)
		api.GET("/responses/:id", handlers.Response.GetResponse)

		api.GET("/reports/attempts/:id/score", handlers.Report.AttemptScoreReport)

		// Catalog reads
		api.GET("/tests", handlers.Test.ListTests)
		api.GET("/tests/:id", handlers.Test.GetTest)
		api.GET("/tests/:id/paper", handlers.Test.GetTestPaper)
		api.GET("/tests/:id/sections", handlers.Test.ListSections)
		api.GET("/sections/:id/questions", handlers.Question.ListQuestions)
		api.GET("/questions/:id/options", handlers.Question.ListOptions)
	}

	// ─── 2. Grading Group (graders and admins) ─────────────────────────
	grading := api.Group("")
	grading.Use(middleware.RequireRole(middleware.RoleGrader, middleware.RoleAdmin))
	{
		grading.POST("/grading/auto", handlers.Grading.AutoGrade)
		grading.POST("/grading/manual", handlers.Grading.ManualGrade)
		grading.PATCH("/responses/:id", handlers.Response.GradeResponse)
	}

	// ─── 3. Catalog Writes (admins) ────────────────────────────────────
	catalog := api.Group("")
	catalog.Use(middleware.RequireRole(middleware.RoleAdmin))
	{
		catalog.POST("/tests", handlers.Test.CreateTest)
		catalog.PUT("/tests/:id", handlers.Test.UpdateTest)
		catalog.DELETE("/tests/:id", handlers.Test.DeleteTest)
		catalog.POST("/tests/:id/sections", handlers.Test.CreateSection)
		catalog.DELETE("/sections/:id", handlers.Test.DeleteSection)
		catalog.POST("/sections/:id/questions", handlers.Question.CreateQuestion)
		catalog.DELETE("/questions/:id", handlers.Question.DeleteQuestion)
		catalog.POST("/questions/:id/options", handlers.Question.CreateOption)
		catalog.DELETE("/questions/:id/options/:optionId", handlers.Question.DeleteOption)
	}

	return router
}
