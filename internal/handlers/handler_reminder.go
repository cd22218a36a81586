package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reminderHandler handles HTTP requests related to reminders.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
}

func registerReminderRoutes(rg, application *gin.RouterGroup, rs portssvc.ReminderSvcFacade) {
	h := &reminderHandler{reminderService: rs}

	application.GET("/reminders", h.listReminders)
	application.POST("/reminders", h.createReminder)

	reminders := rg.Group("/reminders")
	{
		reminders.GET("", h.listUserReminders)
		reminders.PATCH("/:reminderID", h.updateReminder)
		reminders.DELETE("/:reminderID", h.deleteReminder)
	}
}

// listReminders godoc
// @Summary List reminders
// @Tags reminders
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Success 200 {array} dto.ReminderResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{applicationID}/reminders [get]
func (h *reminderHandler) listReminders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	reminders, err := h.reminderService.ListReminders(c.Request.Context(), userID, c.Param("applicationID"))
	if err != nil {
		respondError(c, err, "list reminders")
		return
	}
	c.JSON(http.StatusOK, dto.ToReminderResponses(reminders))
}

// listUserReminders godoc
// @Summary List all reminders
// @Description Lists reminders across all of the caller's applications
// @Tags reminders
// @Produce  json
// @Param   sortBy query string false "NEWEST (default) or OLDEST"
// @Param   statusFilter query string false "ALL (default), ACTIVE, STOPPED or DONE"
// @Success 200 {array} dto.ReminderResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /reminders [get]
func (h *reminderHandler) listUserReminders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListUserRemindersParams
	if !bindQuery(c, &params) {
		return
	}
	reminders, err := h.reminderService.ListUserReminders(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "list reminders")
		return
	}
	c.JSON(http.StatusOK, dto.ToReminderResponses(reminders))
}

// createReminder godoc
// @Summary Create a reminder
// @Description Creates a reminder and schedules its notification. When scheduling fails the reminder is still saved and the response carries a warning.
// @Tags reminders
// @Accept  json
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Param   reminder body dto.CreateReminderRequest true "Reminder"
// @Success 201 {object} dto.ReminderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{applicationID}/reminders [post]
func (h *reminderHandler) createReminder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReminderRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.reminderService.CreateReminder(c.Request.Context(), userID, c.Param("applicationID"), req)
	if err != nil {
		respondError(c, err, "create reminder")
		return
	}
	logSchedulingWarning(c, result.SchedulingErr, result.Reminder.ReminderID)
	c.JSON(http.StatusCreated, dto.ToReminderResultResponse(result))
}

// updateReminder godoc
// @Summary Update a reminder
// @Description Moving the alarm or changing the status reschedules or cancels the notification
// @Tags reminders
// @Accept  json
// @Produce  json
// @Param   reminderID path string true "Reminder ID"
// @Param   reminder body dto.UpdateReminderRequest true "Fields to update"
// @Success 200 {object} dto.ReminderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Reminder not found"
// @Security BearerAuth
// @Router /reminders/{reminderID} [patch]
func (h *reminderHandler) updateReminder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateReminderRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.reminderService.UpdateReminder(c.Request.Context(), userID, c.Param("reminderID"), req)
	if err != nil {
		respondError(c, err, "update reminder")
		return
	}
	logSchedulingWarning(c, result.SchedulingErr, result.Reminder.ReminderID)
	c.JSON(http.StatusOK, dto.ToReminderResultResponse(result))
}

// deleteReminder godoc
// @Summary Delete a reminder
// @Tags reminders
// @Param   reminderID path string true "Reminder ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Reminder not found"
// @Security BearerAuth
// @Router /reminders/{reminderID} [delete]
func (h *reminderHandler) deleteReminder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.reminderService.DeleteReminder(c.Request.Context(), userID, c.Param("reminderID")); err != nil {
		respondError(c, err, "delete reminder")
		return
	}
	c.Status(http.StatusNoContent)
}

func logSchedulingWarning(c *gin.Context, err error, reminderID string) {
	if errors.Is(err, apperrors.ErrSchedulingFailed) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Reminder saved without a scheduled job",
			slog.String("reminder_id", reminderID),
			slog.String("error", err.Error()))
	}
}
