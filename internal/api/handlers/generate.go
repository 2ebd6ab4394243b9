package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/config"
	"resumeforge/internal/llm"
	"resumeforge/internal/logging"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

// GenerateResumeHandler runs one generation round trip and returns the
// decoded sections.
func GenerateResumeHandler(cfg *config.Config, llmManager *llm.Manager, activity storage.ActivityStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.GenerateResumeRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind generate request", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return bindError(c, reqID)
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Generate request validation failed", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return validationError(c, reqID, err)
		}

		logger.Info("Processing generate request", map[string]interface{}{
			"request_id": reqID,
			"mode":       req.Mode,
			"account_id": req.Account.ID,
		})

		parsed, err := llmManager.GenerateResume(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Generation failed", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return respondError(c, reqID, "generation_failed", err)
		}

		recordActivity(c, activity, req.Account.ID, models.ActionResumeGenerate, req.Mode)

		logger.Info("Generate request completed", map[string]interface{}{
			"request_id":      reqID,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, models.GenerateResumeResponse{
			Success:        true,
			Result:         parsed,
			ProcessingTime: time.Since(startTime),
			RequestID:      reqID,
		})
	}
}

// ImportResumeHandler parses an uploaded or pasted resume into editor-ready
// structured data.
func ImportResumeHandler(cfg *config.Config, llmManager *llm.Manager, activity storage.ActivityStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.GenerateResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, reqID)
		}

		// Imports always rework an existing document.
		req.Mode = models.ModeFormatExisting

		resume, _, err := llmManager.ImportResume(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Import failed", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return respondError(c, reqID, "import_failed", err)
		}

		recordActivity(c, activity, req.Account.ID, models.ActionResumeParse, "")

		return c.JSON(http.StatusOK, models.ImportResumeResponse{
			Success:   true,
			Resume:    resume,
			RequestID: reqID,
		})
	}
}

// recordActivity appends an audit event; failures are logged, never
// surfaced.
func recordActivity(c echo.Context, activity storage.ActivityStore, accountID, action, details string) {
	if activity == nil || accountID == "" {
		return
	}
	entry := &models.ActivityLog{AccountID: accountID, Action: action, Details: details}
	if err := activity.Record(c.Request().Context(), entry); err != nil {
		logging.GetGlobalLogger().Warn("Failed to record activity", map[string]interface{}{
			"action": action, "error": err.Error(),
		})
	}
}
