package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"resumeforge/internal/api/handlers"
	"resumeforge/internal/api/middleware"
	"resumeforge/internal/config"
	"resumeforge/internal/drafts"
	"resumeforge/internal/llm"
	"resumeforge/internal/renderer"
	"resumeforge/internal/storage"
)

// Dependencies carries the wired services the routes dispatch to.
type Dependencies struct {
	Config           *config.Config
	LLMManager       *llm.Manager
	Renderer         *renderer.Renderer
	DraftRegistry    *drafts.Registry
	DraftStore       storage.DraftStore
	ResumeStore      storage.ResumeStore
	CoverLetterStore storage.CoverLetterStore
	ActivityStore    storage.ActivityStore
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	cfg := deps.Config

	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Selective timeout: short for most endpoints, LLM timeout for generation
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, cfg.LLM.Timeout+10*time.Second))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.LLMManager, deps.DraftStore))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(deps.LLMManager))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.GET("/templates", handlers.TemplatesHandler())

		generationLimit := middleware.GenerationRateLimit(cfg)

		resume := v1.Group("/resume")
		{
			resume.POST("/generate", handlers.GenerateResumeHandler(cfg, deps.LLMManager, deps.ActivityStore), generationLimit)
			resume.POST("/import", handlers.ImportResumeHandler(cfg, deps.LLMManager, deps.ActivityStore), generationLimit)
			resume.POST("/render", handlers.RenderResumeHandler(deps.Renderer, deps.ActivityStore))
			resume.POST("/draft", handlers.SaveDraftHandler(deps.DraftRegistry))
			resume.GET("/latest-draft", handlers.LatestDraftHandler(deps.DraftRegistry))
		}

		resumes := v1.Group("/resumes")
		{
			resumes.POST("", handlers.SaveResumeHandler(deps.ResumeStore, deps.ActivityStore))
			resumes.GET("", handlers.ListResumesHandler(deps.ResumeStore))
			resumes.GET("/:id", handlers.GetResumeHandler(deps.ResumeStore))
			resumes.PUT("/:id", handlers.UpdateResumeHandler(deps.ResumeStore, deps.ActivityStore))
			resumes.DELETE("/:id", handlers.DeleteResumeHandler(deps.ResumeStore))
		}

		coverLetters := v1.Group("/cover-letters")
		{
			coverLetters.POST("/generate", handlers.GenerateCoverLetterHandler(cfg, deps.LLMManager, deps.CoverLetterStore, deps.ActivityStore), generationLimit)
			coverLetters.GET("", handlers.ListCoverLettersHandler(deps.CoverLetterStore))
			coverLetters.GET("/:id", handlers.GetCoverLetterHandler(deps.CoverLetterStore))
			coverLetters.DELETE("/:id", handlers.DeleteCoverLetterHandler(deps.CoverLetterStore))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "ResumeForge",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
