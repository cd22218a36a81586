package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// applicationHandler handles HTTP requests related to applications.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
	interviewService   portssvc.InterviewSvcFacade
	reminderService    portssvc.ReminderSvcFacade
}

func newApplicationHandler(as portssvc.ApplicationSvcFacade, is portssvc.InterviewSvcFacade, rs portssvc.ReminderSvcFacade) *applicationHandler {
	return &applicationHandler{applicationService: as, interviewService: is, reminderService: rs}
}

// registerApplicationRoutes registers routes related to applications.
func registerApplicationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) *gin.RouterGroup {
	h := newApplicationHandler(services.Application, services.Interview, services.Reminder)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.createApplication)
		applications.GET("", h.listApplications)
		applications.GET("/:applicationID", h.getApplication)
		applications.PATCH("/:applicationID", h.updateApplication)
		applications.DELETE("/:applicationID", h.deleteApplication)
	}
	return applications.Group("/:applicationID")
}

// createApplication godoc
// @Summary Create a job application
// @Description Creates an application and its first ledger entry. The company is matched by name or created.
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   application body dto.CreateApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create application"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) createApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "create application")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Application created", slog.String("application_id", app.ApplicationID))
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// listApplications godoc
// @Summary List job applications
// @Description Filters, sorts and pages the caller's applications. DATE_NEW and DATE_OLD order drafts first, then active, then finished applications.
// @Tags applications
// @Produce  json
// @Param   search query string false "Matches job title or company name"
// @Param   status query []string false "Status filter" collectionFormat(multi)
// @Param   page query int false "Page number (1-based)"
// @Param   pageSize query int false "Page size (max 100)"
// @Param   sort query string false "DATE_NEW, DATE_OLD, ALPHABETICAL or PRIORITY"
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list applications"
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListApplicationsParams
	if !bindQuery(c, &params) {
		return
	}

	resp, err := h.applicationService.ListApplications(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "list applications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getApplication godoc
// @Summary Get a job application
// @Description Returns the application with its company, ledger, interviews and reminders
// @Tags applications
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Success 200 {object} dto.ApplicationDetailResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to get application"
// @Security BearerAuth
// @Router /applications/{applicationID} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	applicationID := c.Param("applicationID")

	app, err := h.applicationService.GetApplication(ctx, userID, applicationID)
	if err != nil {
		respondError(c, err, "get application")
		return
	}
	interviews, err := h.interviewService.ListInterviews(ctx, userID, applicationID)
	if err != nil {
		respondError(c, err, "get application")
		return
	}
	reminders, err := h.reminderService.ListReminders(ctx, userID, applicationID)
	if err != nil {
		respondError(c, err, "get application")
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationDetailResponse{
		ApplicationResponse: dto.ToApplicationResponse(app),
		Interviews:          dto.ToInterviewResponses(interviews),
		Reminders:           dto.ToReminderResponses(reminders),
	})
}

// updateApplication godoc
// @Summary Update a job application
// @Description Updates descriptive fields. The status only changes through ledger entries.
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Param   application body dto.UpdateApplicationRequest true "Fields to update"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 500 {object} map[string]string "Failed to update application"
// @Security BearerAuth
// @Router /applications/{applicationID} [patch]
func (h *applicationHandler) updateApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateApplication(c.Request.Context(), userID, c.Param("applicationID"), req)
	if err != nil {
		respondError(c, err, "update application")
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// deleteApplication godoc
// @Summary Delete a job application
// @Description Deletes the application with its ledger, interviews and reminders
// @Tags applications
// @Param   applicationID path string true "Application ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to delete application"
// @Security BearerAuth
// @Router /applications/{applicationID} [delete]
func (h *applicationHandler) deleteApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.applicationService.DeleteApplication(c.Request.Context(), userID, c.Param("applicationID")); err != nil {
		respondError(c, err, "delete application")
		return
	}
	c.Status(http.StatusNoContent)
}
