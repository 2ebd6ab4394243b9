package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/logging"
	"resumeforge/internal/renderer"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

// RenderResumeHandler projects resume data into an HTML layout. An unknown
// template identifier renders the default layout rather than failing.
func RenderResumeHandler(r *renderer.Renderer, activity storage.ActivityStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.RenderResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c, reqID)
		}

		html, err := r.Render(&req.Resume, req.TemplateID, req.Account)
		if err != nil {
			logger.Error("Render failed", map[string]interface{}{
				"request_id":  reqID,
				"template_id": req.TemplateID,
				"error":       err.Error(),
			})
			return respondError(c, reqID, "render_failed", err)
		}

		recordActivity(c, activity, req.Account.ID, models.ActionResumeDownload, req.TemplateID)

		return c.HTMLBlob(http.StatusOK, html)
	}
}

// TemplatesHandler returns the fixed template catalog.
func TemplatesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"templates": renderer.Catalog(),
			"default":   renderer.DefaultTemplateID,
		})
	}
}
