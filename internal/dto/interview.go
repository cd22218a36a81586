package dto

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// CreateInterviewRequest schedules an interview. It is recorded as an
// INTERVIEW ledger entry.
type CreateInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Notes       string    `json:"notes" binding:"max=2000"`
}

// UpdateInterviewRequest defines the editable fields of an interview.
// Status overrides the UPCOMING/DONE value derived from ScheduledAt.
type UpdateInterviewRequest struct {
	ScheduledAt *time.Time              `json:"scheduledAt"`
	Notes       *string                 `json:"notes" binding:"omitempty,max=2000"`
	Status      *domain.InterviewStatus `json:"status" binding:"omitempty,interview_status"`
}

// ListUserInterviewsParams defines the query parameters of the interview list
// across all of a user's applications. StatusFilter ALL (or empty) matches
// every interview.
type ListUserInterviewsParams struct {
	SortBy       domain.ScheduleOrder `form:"sortBy" binding:"omitempty,schedule_order"`
	StatusFilter string               `form:"statusFilter" binding:"omitempty,oneof=ALL UPCOMING DONE"`
}

// InterviewResponse defines the data returned for an interview.
type InterviewResponse struct {
	InterviewID   string                 `json:"interviewID"`
	ApplicationID string                 `json:"applicationID"`
	ScheduledAt   time.Time              `json:"scheduledAt"`
	Notes         string                 `json:"notes"`
	Status        domain.InterviewStatus `json:"status"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func ToInterviewResponse(iv *domain.Interview) InterviewResponse {
	return InterviewResponse{
		InterviewID:   iv.InterviewID,
		ApplicationID: iv.ApplicationID,
		ScheduledAt:   iv.ScheduledAt,
		Notes:         iv.Notes,
		Status:        iv.Status,
		UpdatedAt:     iv.UpdatedAt,
	}
}

func ToInterviewResponses(ivs []domain.Interview) []InterviewResponse {
	out := make([]InterviewResponse, len(ivs))
	for i := range ivs {
		out[i] = ToInterviewResponse(&ivs[i])
	}
	return out
}
