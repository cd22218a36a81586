package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock JobScheduler ---
type MockJobScheduler struct {
	mock.Mock
}

var _ portssvc.JobScheduler = (*MockJobScheduler)(nil)

func (m *MockJobScheduler) Enqueue(ctx context.Context, reminderID string, delay time.Duration) (string, error) {
	args := m.Called(ctx, reminderID, delay)
	return args.String(0), args.Error(1)
}

func (m *MockJobScheduler) Cancel(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyReminder(ctx context.Context, notice domain.ReminderNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
