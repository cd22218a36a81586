package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
)

var _ portsrepo.CompanyRepositoryFacade = (*Store)(nil)

// companyByName finds the user's company named name, ignoring case.
func (s *state) companyByName(userID, name string) (domain.Company, bool) {
	for _, c := range s.companies {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return domain.Company{}, false
}

func (s *state) UpsertCompanyByName(ctx context.Context, company domain.Company) (*domain.Company, error) {
	if err := s.faults.check("UpsertCompanyByName"); err != nil {
		return nil, err
	}
	if existing, ok := s.companyByName(company.UserID, company.Name); ok {
		return &existing, nil
	}
	s.companies[company.CompanyID] = company
	return &company, nil
}

func (m *Store) FindCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error) {
	var (
		c  domain.Company
		ok bool
	)
	m.locked(func(s *state) { c, ok = s.companies[companyID] })
	if !ok || c.UserID != userID {
		return nil, apperrors.NewNotFoundError("company not found")
	}
	return &c, nil
}

func (m *Store) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	var out []domain.Company
	m.locked(func(s *state) {
		for _, c := range s.companies {
			if c.UserID == userID {
				out = append(out, c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].CompanyID < out[j].CompanyID
	})
	return out, nil
}

func (m *Store) SaveCompany(ctx context.Context, company domain.Company) error {
	if err := m.faults.check("SaveCompany"); err != nil {
		return err
	}
	var err error
	m.locked(func(s *state) {
		if _, taken := s.companyByName(company.UserID, company.Name); taken {
			err = fmt.Errorf("%w: company %q", apperrors.ErrDuplicate, company.Name)
			return
		}
		s.companies[company.CompanyID] = company
	})
	return err
}

func (m *Store) UpdateCompany(ctx context.Context, company domain.Company) error {
	if err := m.faults.check("UpdateCompany"); err != nil {
		return err
	}
	var err error
	m.locked(func(s *state) {
		stored, ok := s.companies[company.CompanyID]
		if !ok || stored.UserID != company.UserID {
			err = apperrors.NewNotFoundError("company not found")
			return
		}
		if other, taken := s.companyByName(company.UserID, company.Name); taken && other.CompanyID != company.CompanyID {
			err = fmt.Errorf("%w: company %q", apperrors.ErrDuplicate, company.Name)
			return
		}
		company.CreatedAt = stored.CreatedAt
		company.CreatedBy = stored.CreatedBy
		s.companies[company.CompanyID] = company
	})
	return err
}
