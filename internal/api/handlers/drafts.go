package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/drafts"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
)

// SaveDraftHandler records an autosave edit. The write is debounced: rapid
// posts from the same session collapse into one store write after the
// quiet period, so the handler answers 202.
func SaveDraftHandler(registry *drafts.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.SaveDraftRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, reqID)
		}
		if err := validate.Struct(&req); err != nil {
			return validationError(c, reqID, err)
		}

		registry.Touch(req.AccountID, req.TemplateID, req.Content)

		logger.Debug("Draft edit recorded", map[string]interface{}{
			"request_id":  reqID,
			"account_id":  req.AccountID,
			"template_id": req.TemplateID,
		})

		return c.JSON(http.StatusAccepted, map[string]interface{}{
			"accepted":   true,
			"request_id": reqID,
		})
	}
}

// LatestDraftHandler returns the account's stored draft for a template
// bucket, flushing any pending debounced edit first.
func LatestDraftHandler(registry *drafts.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		accountID := c.QueryParam("account_id")
		if accountID == "" {
			return validationError(c, reqID, errMissingAccountID)
		}
		templateID := c.QueryParam("template_id")

		draft, err := registry.Latest(c.Request().Context(), accountID, templateID)
		if err != nil {
			return respondError(c, reqID, "draft_not_found", err)
		}

		return c.JSON(http.StatusOK, draft)
	}
}
