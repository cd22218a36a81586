package services

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// ChartSvc defines the funnel projections over a user's applications
type ChartSvc interface {
	// PeriodCounts buckets applications by the date they reached their current status.
	PeriodCounts(ctx context.Context, userID string, tf domain.TimeFrame) ([]domain.PeriodCount, error)

	// StatusSummary totals applications per current status with percentage shares.
	StatusSummary(ctx context.Context, userID string, tf domain.TimeFrame) (*domain.StatusSummary, error)

	// TransitionGraph builds the weighted status flow graph.
	TransitionGraph(ctx context.Context, userID string, tf domain.TimeFrame) (*domain.TransitionGraph, error)
}
