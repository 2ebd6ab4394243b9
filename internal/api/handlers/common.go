package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resumeforge/internal/api/validation"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

var validate = validator.New()

var errMissingAccountID = errors.New("account_id is required")

func init() {
	validation.RegisterResumeValidators(validate)
}

// requestID returns the ID stamped by the validation middleware, minting
// one when the middleware didn't run (tests, direct calls).
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// respondError maps application errors to HTTP responses.
func respondError(c echo.Context, reqID, label string, err error) error {
	status := http.StatusInternalServerError

	var customErr *utils.CustomError
	if errors.As(err, &customErr) {
		status = customErr.Code
	} else if errors.Is(err, storage.ErrNotFound) {
		status = http.StatusNotFound
	}

	return c.JSON(status, models.ErrorResponse{
		Error:     label,
		Message:   err.Error(),
		RequestID: reqID,
		Timestamp: time.Now(),
	})
}

func bindError(c echo.Context, reqID string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "invalid_request",
		Message:   "Invalid request format",
		RequestID: reqID,
		Timestamp: time.Now(),
	})
}

func validationError(c echo.Context, reqID string, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "validation_failed",
		Message:   err.Error(),
		RequestID: reqID,
		Timestamp: time.Now(),
	})
}
