package dto

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/core/lifecycle"
)

// CreateApplicationRequest defines the data needed to create an application.
// Status and StatusDate seed the first ledger entry; they default to DRAFT and now.
type CreateApplicationRequest struct {
	JobTitle       string                   `json:"jobTitle" binding:"required,max=200"`
	CompanyName    string                   `json:"companyName" binding:"required,max=200"`
	JobLink        string                   `json:"jobLink" binding:"omitempty,url"`
	JobDescription string                   `json:"jobDescription"`
	WorkLocation   domain.WorkLocation      `json:"workLocation" binding:"omitempty,work_location"`
	Priority       domain.Priority          `json:"priority" binding:"omitempty,priority"`
	Notes          string                   `json:"notes" binding:"max=5000"`
	Favorited      bool                     `json:"favorited"`
	FileURLs       []string                 `json:"fileURLs" binding:"omitempty,dive,url"`
	Status         domain.ApplicationStatus `json:"status" binding:"omitempty,application_status"`
	StatusDate     *time.Time               `json:"statusDate"`
}

// UpdateApplicationRequest defines the fields that can be changed on an
// application. Status is not here: it follows the ledger.
type UpdateApplicationRequest struct {
	JobTitle       *string              `json:"jobTitle" binding:"omitempty,min=1,max=200"`
	CompanyName    *string              `json:"companyName" binding:"omitempty,min=1,max=200"`
	JobLink        *string              `json:"jobLink" binding:"omitempty"`
	JobDescription *string              `json:"jobDescription"`
	WorkLocation   *domain.WorkLocation `json:"workLocation" binding:"omitempty,work_location"`
	Priority       *domain.Priority     `json:"priority" binding:"omitempty,priority"`
	Notes          *string              `json:"notes" binding:"omitempty,max=5000"`
	Favorited      *bool                `json:"favorited"`
	FileURLs       []string             `json:"fileURLs" binding:"omitempty,dive,url"`
}

// ListApplicationsParams defines the query parameters of the application list.
type ListApplicationsParams struct {
	Search   string                     `form:"search"`
	Statuses []domain.ApplicationStatus `form:"status" binding:"omitempty,dive,application_status"`
	Page     int                        `form:"page" binding:"omitempty,min=1"`
	PageSize int                        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Sort     domain.SortMode            `form:"sort" binding:"omitempty,sort_mode"`
}

// ApplicationResponse defines the data returned for an application.
type ApplicationResponse struct {
	ApplicationID  string                   `json:"applicationID"`
	Company        *CompanyResponse         `json:"company,omitempty"`
	JobTitle       string                   `json:"jobTitle"`
	JobLink        string                   `json:"jobLink"`
	JobDescription string                   `json:"jobDescription"`
	WorkLocation   domain.WorkLocation      `json:"workLocation"`
	Priority       domain.Priority          `json:"priority"`
	Notes          string                   `json:"notes"`
	Favorited      bool                     `json:"favorited"`
	FileURLs       []string                 `json:"fileURLs"`
	Status         domain.ApplicationStatus `json:"status"`
	Phase          string                   `json:"phase"`
	StatusDate     *time.Time               `json:"statusDate,omitempty"`
	LedgerEntries  []LedgerEntryResponse    `json:"ledgerEntries,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	LastUpdatedAt  time.Time                `json:"lastUpdatedAt"`
}

// ListApplicationsResponse wraps one page of applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
	Total        int                   `json:"total"`
}

// ToApplicationResponse converts a domain.Application to ApplicationResponse DTO.
func ToApplicationResponse(app *domain.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ApplicationID:  app.ApplicationID,
		JobTitle:       app.JobTitle,
		JobLink:        app.JobLink,
		JobDescription: app.JobDescription,
		WorkLocation:   app.WorkLocation,
		Priority:       app.Priority,
		Notes:          app.Notes,
		Favorited:      app.Favorited,
		FileURLs:       app.FileURLs,
		Status:         app.Status,
		Phase:          lifecycle.PhaseOf(app.Status).String(),
		CreatedAt:      app.CreatedAt,
		LastUpdatedAt:  app.LastUpdatedAt,
	}
	if resp.FileURLs == nil {
		resp.FileURLs = []string{}
	}
	if app.Company != nil {
		company := ToCompanyResponse(app.Company)
		resp.Company = &company
	}
	if len(app.LedgerEntries) > 0 {
		resp.LedgerEntries = ToLedgerEntryResponses(app.LedgerEntries)
		if date, ok := lifecycle.RelevantDate(*app); ok {
			resp.StatusDate = &date
		}
	}
	return resp
}

// ToApplicationResponses converts a slice of domain.Application to []ApplicationResponse.
func ToApplicationResponses(apps []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, len(apps))
	for i := range apps {
		out[i] = ToApplicationResponse(&apps[i])
	}
	return out
}

// ApplicationDetailResponse is an application with everything hanging off it.
type ApplicationDetailResponse struct {
	ApplicationResponse
	Interviews []InterviewResponse `json:"interviews"`
	Reminders  []ReminderResponse  `json:"reminders"`
}
