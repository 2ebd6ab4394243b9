package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/logging"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

// SaveResumeHandler persists a titled resume.
func SaveResumeHandler(store storage.ResumeStore, activity storage.ActivityStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.SaveResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, reqID)
		}
		if err := validate.Struct(&req); err != nil {
			return validationError(c, reqID, err)
		}

		resume := &models.SavedResume{
			AccountID:  req.AccountID,
			TemplateID: req.TemplateID,
			Title:      req.Title,
			Content:    req.Content,
		}
		if err := store.Create(c.Request().Context(), resume); err != nil {
			logger.Error("Failed to save resume", map[string]interface{}{
				"request_id": reqID, "error": err.Error(),
			})
			return respondError(c, reqID, "save_failed", err)
		}

		recordActivity(c, activity, req.AccountID, models.ActionResumeSave, resume.ID)

		return c.JSON(http.StatusCreated, resume)
	}
}

// ListResumesHandler lists the account's saved resumes, newest first.
func ListResumesHandler(store storage.ResumeStore) echo.HandlerFunc {
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
			"resumes": summaries,
			"count":   len(summaries),
		})
	}
}

// GetResumeHandler returns one saved resume owned by the account.
func GetResumeHandler(store storage.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		accountID := c.QueryParam("account_id")
		if accountID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}

		resume, err := store.GetByID(c.Request().Context(), accountID, c.Param("id"))
		if err != nil {
			return respondError(c, reqID, "resume_not_found", err)
		}

		return c.JSON(http.StatusOK, resume)
	}
}

// UpdateResumeHandler overwrites fields of a saved resume. Nil request
// fields leave the stored value untouched.
func UpdateResumeHandler(store storage.ResumeStore, activity storage.ActivityStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		var req models.UpdateResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, reqID)
		}
		if err := validate.Struct(&req); err != nil {
			return validationError(c, reqID, err)
		}

		ctx := c.Request().Context()
		resume, err := store.GetByID(ctx, req.AccountID, c.Param("id"))
		if err != nil {
			return respondError(c, reqID, "resume_not_found", err)
		}

		if req.TemplateID != nil {
			resume.TemplateID = *req.TemplateID
		}
		if req.Title != nil {
			resume.Title = *req.Title
		}
		if req.Content != nil {
			resume.Content = *req.Content
		}

		if err := store.Update(ctx, resume); err != nil {
			return respondError(c, reqID, "update_failed", err)
		}

		recordActivity(c, activity, req.AccountID, models.ActionResumeUpdate, resume.ID)

		return c.JSON(http.StatusOK, resume)
	}
}

// DeleteResumeHandler removes a saved resume owned by the account.
func DeleteResumeHandler(store storage.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		accountID := c.QueryParam("account_id")
		if accountID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}

		if err := store.Delete(c.Request().Context(), accountID, c.Param("id")); err != nil {
			return respondError(c, reqID, "delete_failed", err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
