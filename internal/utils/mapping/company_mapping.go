package mapping

import (
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:    d.CompanyID,
		UserID:       d.UserID,
		Name:         d.Name,
		Website:      d.Website,
		Street:       d.Street,
		City:         d.City,
		State:        d.State,
		ZipCode:      d.ZipCode,
		Country:      d.Country,
		Industry:     d.Industry,
		CompanySize:  d.CompanySize,
		ContactName:  d.ContactName,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Notes:        d.Notes,
		LogoURL:      d.LogoURL,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:    m.CompanyID,
		UserID:       m.UserID,
		Name:         m.Name,
		Website:      m.Website,
		Street:       m.Street,
		City:         m.City,
		State:        m.State,
		ZipCode:      m.ZipCode,
		Country:      m.Country,
		Industry:     m.Industry,
		CompanySize:  m.CompanySize,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Notes:        m.Notes,
		LogoURL:      m.LogoURL,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of model Companies to domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}
