package memory

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
)

var _ portsrepo.UserRepositoryFacade = (*Store)(nil)

func (m *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	m.locked(func(s *state) { u, ok = s.users[userID] })
	if !ok || u.DeletedAt != nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return &u, nil
}
