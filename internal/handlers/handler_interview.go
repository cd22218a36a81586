package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// interviewHandler handles HTTP requests related to interviews.
type interviewHandler struct {
	interviewService portssvc.InterviewSvcFacade
}

func registerInterviewRoutes(rg, application *gin.RouterGroup, is portssvc.InterviewSvcFacade) {
	h := &interviewHandler{interviewService: is}

	application.GET("/interviews", h.listInterviews)
	application.POST("/interviews", h.createInterview)

	interviews := rg.Group("/interviews")
	{
		interviews.GET("", h.listUserInterviews)
		interviews.PATCH("/:interviewID", h.updateInterview)
		interviews.DELETE("/:interviewID", h.deleteInterview)
	}
}

// listInterviews godoc
// @Summary List interviews
// @Tags interviews
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Success 200 {array} dto.InterviewResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{applicationID}/interviews [get]
func (h *interviewHandler) listInterviews(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	interviews, err := h.interviewService.ListInterviews(c.Request.Context(), userID, c.Param("applicationID"))
	if err != nil {
		respondError(c, err, "list interviews")
		return
	}
	c.JSON(http.StatusOK, dto.ToInterviewResponses(interviews))
}

// listUserInterviews godoc
// @Summary List all interviews
// @Description Lists interviews across all of the caller's applications
// @Tags interviews
// @Produce  json
// @Param   sortBy query string false "NEWEST (default) or OLDEST"
// @Param   statusFilter query string false "ALL (default), UPCOMING or DONE"
// @Success 200 {array} dto.InterviewResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /interviews [get]
func (h *interviewHandler) listUserInterviews(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListUserInterviewsParams
	if !bindQuery(c, &params) {
		return
	}
	interviews, err := h.interviewService.ListUserInterviews(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "list interviews")
		return
	}
	c.JSON(http.StatusOK, dto.ToInterviewResponses(interviews))
}

// createInterview godoc
// @Summary Schedule an interview
// @Description Records an INTERVIEW ledger entry at the scheduled time together with the interview
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Param   interview body dto.CreateInterviewRequest true "Interview"
// @Success 201 {object} dto.InterviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{applicationID}/interviews [post]
func (h *interviewHandler) createInterview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInterviewRequest
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.interviewService.CreateInterview(c.Request.Context(), userID, c.Param("applicationID"), req)
	if err != nil {
		respondError(c, err, "create interview")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInterviewResponse(iv))
}

// updateInterview godoc
// @Summary Update an interview
// @Description Moves the interview together with its ledger entry. An explicit status overrides the derived one.
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   interviewID path string true "Interview ID"
// @Param   interview body dto.UpdateInterviewRequest true "Fields to update"
// @Success 200 {object} dto.InterviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Interview not found"
// @Security BearerAuth
// @Router /interviews/{interviewID} [patch]
func (h *interviewHandler) updateInterview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateInterviewRequest
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.interviewService.UpdateInterview(c.Request.Context(), userID, c.Param("interviewID"), req)
	if err != nil {
		respondError(c, err, "update interview")
		return
	}
	c.JSON(http.StatusOK, dto.ToInterviewResponse(iv))
}

// deleteInterview godoc
// @Summary Delete an interview
// @Description Deletes the interview and its ledger entry
// @Tags interviews
// @Param   interviewID path string true "Interview ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Interview not found"
// @Security BearerAuth
// @Router /interviews/{interviewID} [delete]
func (h *interviewHandler) deleteInterview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.interviewService.DeleteInterview(c.Request.Context(), userID, c.Param("interviewID")); err != nil {
		respondError(c, err, "delete interview")
		return
	}
	c.Status(http.StatusNoContent)
}
