package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/core/funnel"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
)

// chartService implements the ChartSvc interface
type chartService struct {
	BaseService
	appRepo portsrepo.ApplicationReader
}

// NewChartService creates a new chart service
func NewChartService(appRepo portsrepo.ApplicationReader, options ...Option) portssvc.ChartSvc {
	s := &chartService{BaseService: newBaseService(), appRepo: appRepo}
	s.apply(options)
	return s
}

var _ portssvc.ChartSvc = (*chartService)(nil)

func (s *chartService) load(ctx context.Context, userID string, tf domain.TimeFrame) ([]domain.Application, error) {
	if !tf.IsValid() {
		return nil, apperrors.NewValidationError("unknown time frame " + string(tf))
	}
	apps, err := s.appRepo.ListApplicationsWithLedger(ctx, userID, domain.ApplicationFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load applications for charts", slog.String("time_frame", string(tf)))
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	return apps, nil
}

func (s *chartService) PeriodCounts(ctx context.Context, userID string, tf domain.TimeFrame) ([]domain.PeriodCount, error) {
	apps, err := s.load(ctx, userID, tf)
	if err != nil {
		return nil, err
	}
	counts := funnel.PeriodCounts(apps, tf, s.now())
	s.LogDebug(ctx, "Period counts computed", slog.String("time_frame", string(tf)), slog.Int("periods", len(counts)))
	return counts, nil
}

func (s *chartService) StatusSummary(ctx context.Context, userID string, tf domain.TimeFrame) (*domain.StatusSummary, error) {
	apps, err := s.load(ctx, userID, tf)
	if err != nil {
		return nil, err
	}
	summary := funnel.StatusSummary(apps, tf, s.now())
	return &summary, nil
}

func (s *chartService) TransitionGraph(ctx context.Context, userID string, tf domain.TimeFrame) (*domain.TransitionGraph, error) {
	apps, err := s.load(ctx, userID, tf)
	if err != nil {
		return nil, err
	}
	graph := funnel.TransitionGraph(apps, funnel.ResolveWindow(tf, s.now()))
	s.LogDebug(ctx, "Transition graph computed",
		slog.String("time_frame", string(tf)),
		slog.Int("nodes", len(graph.Nodes)),
		slog.Int("edges", len(graph.Edges)))
	return &graph, nil
}
