package dto

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// ChartParams defines the query parameters shared by the chart endpoints.
type ChartParams struct {
	TimeFrame domain.TimeFrame `form:"timeFrame" binding:"omitempty,timeframe"`
}

// PeriodCountResponse is one bucket of the status-over-time chart.
type PeriodCountResponse struct {
	Period string         `json:"period"`
	Start  time.Time      `json:"start"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// PeriodCountsResponse defines the response of the status-over-time chart.
type PeriodCountsResponse struct {
	TimeFrame domain.TimeFrame      `json:"timeFrame"`
	Periods   []PeriodCountResponse `json:"periods"`
}

// ToPeriodCountsResponse converts period buckets for the given time frame.
func ToPeriodCountsResponse(tf domain.TimeFrame, periods []domain.PeriodCount) PeriodCountsResponse {
	resp := PeriodCountsResponse{TimeFrame: tf, Periods: make([]PeriodCountResponse, len(periods))}
	for i, p := range periods {
		counts := make(map[string]int, len(p.Counts))
		for status, n := range p.Counts {
			counts[string(status)] = n
		}
		resp.Periods[i] = PeriodCountResponse{Period: p.Period, Start: p.Start, Counts: counts, Total: p.Total}
	}
	return resp
}

// TransitionGraphResponse defines the response of the flow chart.
type TransitionGraphResponse struct {
	TimeFrame domain.TimeFrame        `json:"timeFrame"`
	Nodes     []domain.TransitionNode `json:"nodes"`
	Edges     []domain.TransitionEdge `json:"edges"`
}

func ToTransitionGraphResponse(tf domain.TimeFrame, g *domain.TransitionGraph) TransitionGraphResponse {
	return TransitionGraphResponse{TimeFrame: tf, Nodes: g.Nodes, Edges: g.Edges}
}
