package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chartHandler serves the funnel projections.
type chartHandler struct {
	chartService portssvc.ChartSvc
}

func registerChartRoutes(rg *gin.RouterGroup, cs portssvc.ChartSvc) {
	h := &chartHandler{chartService: cs}

	charts := rg.Group("/charts")
	{
		charts.GET("/periods", h.periodCounts)
		charts.GET("/summary", h.statusSummary)
		charts.GET("/transitions", h.transitionGraph)
	}
}

// timeFrame reads the timeFrame query parameter, defaulting to ALL_TIME.
func timeFrame(c *gin.Context) (domain.TimeFrame, bool) {
	var params dto.ChartParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind chart parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return "", false
	}
	if params.TimeFrame == "" {
		return domain.TimeFrameAllTime, true
	}
	return params.TimeFrame, true
}

// periodCounts godoc
// @Summary Applications per period and status
// @Description Buckets applications by the month (or year for ALL_TIME) they reached their current status
// @Tags charts
// @Produce  json
// @Param   timeFrame query string false "PAST_MONTH, PAST_3_MONTHS, PAST_6_MONTHS, PAST_12_MONTHS, THIS_YEAR or ALL_TIME"
// @Success 200 {object} dto.PeriodCountsResponse
// @Failure 400 {object} map[string]string "Invalid time frame"
// @Security BearerAuth
// @Router /charts/periods [get]
func (h *chartHandler) periodCounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tf, ok := timeFrame(c)
	if !ok {
		return
	}
	periods, err := h.chartService.PeriodCounts(c.Request.Context(), userID, tf)
	if err != nil {
		respondError(c, err, "compute period counts")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodCountsResponse(tf, periods))
}

// statusSummary godoc
// @Summary Status distribution
// @Description Counts applications per current status with percentage shares
// @Tags charts
// @Produce  json
// @Param   timeFrame query string false "Time frame"
// @Success 200 {object} domain.StatusSummary
// @Failure 400 {object} map[string]string "Invalid time frame"
// @Security BearerAuth
// @Router /charts/summary [get]
func (h *chartHandler) statusSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tf, ok := timeFrame(c)
	if !ok {
		return
	}
	summary, err := h.chartService.StatusSummary(c.Request.Context(), userID, tf)
	if err != nil {
		respondError(c, err, "compute status summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// transitionGraph godoc
// @Summary Status flow graph
// @Description Weighted graph of how applications moved between statuses
// @Tags charts
// @Produce  json
// @Param   timeFrame query string false "Time frame"
// @Success 200 {object} dto.TransitionGraphResponse
// @Failure 400 {object} map[string]string "Invalid time frame"
// @Security BearerAuth
// @Router /charts/transitions [get]
func (h *chartHandler) transitionGraph(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tf, ok := timeFrame(c)
	if !ok {
		return
	}
	graph, err := h.chartService.TransitionGraph(c.Request.Context(), userID, tf)
	if err != nil {
		respondError(c, err, "compute transition graph")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransitionGraphResponse(tf, graph))
}
