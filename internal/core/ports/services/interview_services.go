package services

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/dto"
)

// InterviewSvcFacade defines interview operations. Writes go through the
// ledger so that entries and interviews never drift apart.
type InterviewSvcFacade interface {
	ListInterviews(ctx context.Context, userID, applicationID string) ([]domain.Interview, error)
	ListUserInterviews(ctx context.Context, userID string, params dto.ListUserInterviewsParams) ([]domain.Interview, error)
	CreateInterview(ctx context.Context, userID, applicationID string, req dto.CreateInterviewRequest) (*domain.Interview, error)
	UpdateInterview(ctx context.Context, userID, interviewID string, req dto.UpdateInterviewRequest) (*domain.Interview, error)
	DeleteInterview(ctx context.Context, userID, interviewID string) error
}
