package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// InterviewReader defines read operations for interviews.
type InterviewReader interface {
	// FindInterviewForEntry returns the interview linked to entryID, falling
	// back to an unlinked interview of the application scheduled at occurredAt.
	// A miss is reported as (nil, nil).
	FindInterviewForEntry(ctx context.Context, applicationID, entryID string, occurredAt time.Time) (*domain.Interview, error)

	// FindInterviewByID retrieves an interview of one of the user's applications.
	FindInterviewByID(ctx context.Context, userID, interviewID string) (*domain.Interview, error)

	// ListInterviews returns the application's interviews ordered by ScheduledAt.
	ListInterviews(ctx context.Context, applicationID string) ([]domain.Interview, error)
}

// InterviewWriter defines write operations for interviews.
type InterviewWriter interface {
	SaveInterview(ctx context.Context, interview domain.Interview) error
	UpdateInterview(ctx context.Context, interview domain.Interview) error
	DeleteInterview(ctx context.Context, interviewID string) error
}

// InterviewRepositoryFacade exposes interview reads outside a lifecycle transaction.
type InterviewRepositoryFacade interface {
	InterviewReader

	// ListUserInterviews returns the interviews of all the user's applications
	// matching filter, ordered by ScheduledAt.
	ListUserInterviews(ctx context.Context, userID string, filter domain.InterviewFilter) ([]domain.Interview, error)
}
