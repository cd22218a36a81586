package dto

import (
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a company.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Website      string `json:"website" binding:"omitempty,url"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	Industry     string `json:"industry"`
	CompanySize  string `json:"companySize"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
	LogoURL      string `json:"logoURL" binding:"omitempty,url"`
}

// UpdateCompanyRequest defines the editable fields of a company.
type UpdateCompanyRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Website      *string `json:"website"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zipCode"`
	Country      *string `json:"country"`
	Industry     *string `json:"industry"`
	CompanySize  *string `json:"companySize"`
	ContactName  *string `json:"contactName"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone *string `json:"contactPhone"`
	Notes        *string `json:"notes"`
	LogoURL      *string `json:"logoURL"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID    string    `json:"companyID"`
	Name         string    `json:"name"`
	Website      string    `json:"website"`
	Street       string    `json:"street"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	Country      string    `json:"country"`
	Industry     string    `json:"industry"`
	CompanySize  string    `json:"companySize"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	Notes        string    `json:"notes"`
	LogoURL      string    `json:"logoURL"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		Website:      c.Website,
		Street:       c.Street,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Country:      c.Country,
		Industry:     c.Industry,
		CompanySize:  c.CompanySize,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Notes:        c.Notes,
		LogoURL:      c.LogoURL,
		CreatedAt:    c.CreatedAt,
	}
}

func ToCompanyResponses(cs []domain.Company) []CompanyResponse {
	out := make([]CompanyResponse, len(cs))
	for i := range cs {
		out[i] = ToCompanyResponse(&cs[i])
	}
	return out
}
