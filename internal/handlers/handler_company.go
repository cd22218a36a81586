package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func registerCompanyRoutes(rg *gin.RouterGroup, cs portssvc.CompanySvcFacade) {
	h := &companyHandler{companyService: cs}

	companies := rg.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.POST("", h.createCompany)
		companies.GET("/:companyID", h.getCompany)
		companies.PATCH("/:companyID", h.updateCompany)
	}
}

// listCompanies godoc
// @Summary List companies
// @Description Returns the caller's companies ordered by name
// @Tags companies
// @Produce  json
// @Success 200 {array} dto.CompanyResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	companies, err := h.companyService.ListCompanies(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponses(companies))
}

// createCompany godoc
// @Summary Create a company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Company name already used"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.CreateCompany(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "create company")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), userID, c.Param("companyID"))
	if err != nil {
		respondError(c, err, "get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Company name already used"
// @Security BearerAuth
// @Router /companies/{companyID} [patch]
func (h *companyHandler) updateCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.UpdateCompany(c.Request.Context(), userID, c.Param("companyID"), req)
	if err != nil {
		respondError(c, err, "update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
