package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/config"
	"resumeforge/internal/llm"
	"resumeforge/internal/logging"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// GenerateCoverLetterHandler runs one cover-letter generation round trip
// and persists the result under the requesting account.
func GenerateCoverLetterHandler(cfg *config.Config, llmManager *llm.Manager, store storage.CoverLetterStore, activity storage.ActivityStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.GenerateCoverLetterRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, reqID)
		}
		if err := validate.Struct(&req); err != nil {
			return validationError(c, reqID, err)
		}
		if req.Account.ID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}

		logger.Info("Processing cover letter request", map[string]interface{}{
			"request_id":  reqID,
			"template_id": req.TemplateID,
			"account_id":  req.Account.ID,
		})

		content, err := llmManager.GenerateCoverLetter(c.Request().Context(), &req)
		if err != nil {
			logger.Error("Cover letter generation failed", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return respondError(c, reqID, "generation_failed", err)
		}

		letter := &models.CoverLetter{
			AccountID:      req.Account.ID,
			TemplateID:     req.TemplateID,
			Title:          utils.GetStringOrDefault(req.Title, "Cover Letter"),
			JobDescription: req.JobDescription,
			Content:        *content,
		}
		if err := store.Create(c.Request().Context(), letter); err != nil {
			logger.Error("Failed to save cover letter", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return respondError(c, reqID, "save_failed", err)
		}

		recordActivity(c, activity, req.Account.ID, models.ActionCoverLetterGenerate, letter.ID)

		logger.Info("Cover letter request completed", map[string]interface{}{
			"request_id":      reqID,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusCreated, letter)
	}
}

// ListCoverLettersHandler lists the account's cover letters, newest first.
func ListCoverLettersHandler(store storage.CoverLetterStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		accountID := c.QueryParam("account_id")
		if accountID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}

		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))

		summaries, err := store.ListByAccount(c.Request().Context(), accountID, limit, offset)
		if err != nil {
			return respondError(c, reqID, "list_failed", err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"cover_letters": summaries,
			"count":         len(summaries),
		})
	}
}

// GetCoverLetterHandler returns one cover letter owned by the account.
func GetCoverLetterHandler(store storage.CoverLetterStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		accountID := c.QueryParam("account_id")
		if accountID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}

		letter, err := store.GetByID(c.Request().Context(), accountID, c.Param("id"))
		if err != nil {
			return respondError(c, reqID, "cover_letter_not_found", err)
		}

		return c.JSON(http.StatusOK, letter)
	}
}

// DeleteCoverLetterHandler removes a cover letter owned by the account.
func DeleteCoverLetterHandler(store storage.CoverLetterStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		accountID := c.QueryParam("account_id")
		if accountID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}

		if err := store.Delete(c.Request().Context(), accountID, c.Param("id")); err != nil {
			return respondError(c, reqID, "cover_letter_not_found", err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
