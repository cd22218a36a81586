package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the HTTP response for a service error. Storage and
// scheduler details stay in the log; clients only see a generic message
// for anything but not-found, validation and conflict errors.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	switch status {
	case http.StatusNotFound:
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "not found"})
	case http.StatusBadRequest:
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": validationMessage(err)})
	case http.StatusConflict:
		logger.Warn("Conflicting request", slog.String("action", action), slog.String("error", err.Error()))
		msg := "conflict, retry"
		if errors.Is(err, apperrors.ErrDuplicate) {
			msg = "already exists"
		}
		c.JSON(status, gin.H{"error": msg})
	default:
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// validationMessage prefers the message an AppError was built with.
func validationMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// requireUserID returns the authenticated user or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// bindJSON binds the request body into req or responds with 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// bindQuery binds the query string into params or responds with 400.
func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}
