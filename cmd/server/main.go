package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/api/routes"
	"resumeforge/internal/config"
	"resumeforge/internal/drafts"
	"resumeforge/internal/llm"
	"resumeforge/internal/logging"
	"resumeforge/internal/renderer"
	"resumeforge/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.ShutdownLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting ResumeForge")

	ctx := context.Background()

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}

	// Initialize template renderer
	htmlRenderer, err := renderer.New()
	if err != nil {
		logger.Fatal("Failed to initialize renderer", map[string]interface{}{"error": err.Error()})
	}

	// Draft storage: Redis-backed, with a TTL per config
	draftStore := storage.NewRedisDraftStore(cfg)
	defer draftStore.Close()

	// Saved resumes and audit trail: Postgres when configured, in-memory
	// otherwise so the service runs without a database in development.
	var (
		resumeStore      storage.ResumeStore
		coverLetterStore storage.CoverLetterStore
		activityStore    storage.ActivityStore
	)
	if cfg.Database.URL != "" {
		if err := storage.RunMigrations(ctx, cfg.Database.URL); err != nil {
			logger.Fatal("Failed to run database migrations", map[string]interface{}{"error": err.Error()})
		}
		db, err := storage.Connect(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
		}
		defer db.Close()
		resumeStore = storage.NewPGResumeStore(db)
		coverLetterStore = storage.NewPGCoverLetterStore(db)
		activityStore = storage.NewPGActivityStore(db)
	} else {
		logger.Warn("No database configured, saved resumes are in-memory only")
		resumeStore = storage.NewMemoryResumeStore()
		coverLetterStore = storage.NewMemoryCoverLetterStore()
		activityStore = storage.NewMemoryActivityStore()
	}

	// Draft autosave coordination
	draftRegistry := drafts.NewRegistry(draftStore, activityStore, cfg.Drafts.QuietPeriod)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, routes.Dependencies{
		Config:           cfg,
		LLMManager:       llmManager,
		Renderer:         htmlRenderer,
		DraftRegistry:    draftRegistry,
		DraftStore:       draftStore,
		ResumeStore:      resumeStore,
		CoverLetterStore: coverLetterStore,
		ActivityStore:    activityStore,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Flush pending draft edits before anything else stops
		logger.Info("Flushing draft sessions...")
		if err := draftRegistry.Close(shutdownCtx); err != nil {
			logger.Error("Error flushing draft sessions", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping LLM manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
