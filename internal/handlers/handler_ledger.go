package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests on an application's status ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(application *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ls}

	ledger := application.Group("/ledger")
	{
		ledger.GET("", h.listLedgerEntries)
		ledger.POST("", h.createLedgerEntry)
		ledger.PATCH("/:entryID", h.updateLedgerEntry)
		ledger.DELETE("/:entryID", h.deleteLedgerEntry)
	}
}

// listLedgerEntries godoc
// @Summary List ledger entries
// @Description Returns the application's status history in chronological order
// @Tags ledger
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{applicationID}/ledger [get]
func (h *ledgerHandler) listLedgerEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.ledgerService.ListLedgerEntries(c.Request.Context(), userID, c.Param("applicationID"))
	if err != nil {
		respondError(c, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// createLedgerEntry godoc
// @Summary Record a status change
// @Description Appends a ledger entry. The application status follows the latest entry; INTERVIEW entries create an interview.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Param   entry body dto.CreateLedgerEntryRequest true "Ledger entry"
// @Success 201 {object} dto.LedgerMutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /applications/{applicationID}/ledger [post]
func (h *ledgerHandler) createLedgerEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.ledgerService.CreateLedgerEntry(c.Request.Context(), userID, c.Param("applicationID"), req)
	if err != nil {
		respondError(c, err, "create ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerMutationResponse(result))
}

// updateLedgerEntry godoc
// @Summary Edit a ledger entry
// @Description Changes status, date or notes of an entry and re-derives the application status and interview
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Param   entryID path string true "Ledger entry ID"
// @Param   entry body dto.UpdateLedgerEntryRequest true "Fields to update"
// @Success 200 {object} dto.LedgerMutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /applications/{applicationID}/ledger/{entryID} [patch]
func (h *ledgerHandler) updateLedgerEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.ledgerService.UpdateLedgerEntry(c.Request.Context(), userID, c.Param("applicationID"), c.Param("entryID"), req)
	if err != nil {
		respondError(c, err, "update ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerMutationResponse(result))
}

// deleteLedgerEntry godoc
// @Summary Delete a ledger entry
// @Description Removes an entry. Deleting the last entry leaves a fresh DRAFT entry behind (repaired=true).
// @Tags ledger
// @Produce  json
// @Param   applicationID path string true "Application ID"
// @Param   entryID path string true "Ledger entry ID"
// @Success 200 {object} dto.LedgerMutationResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /applications/{applicationID}/ledger/{entryID} [delete]
func (h *ledgerHandler) deleteLedgerEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	result, err := h.ledgerService.DeleteLedgerEntry(c.Request.Context(), userID, c.Param("applicationID"), c.Param("entryID"))
	if err != nil {
		respondError(c, err, "delete ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerMutationResponse(result))
}
