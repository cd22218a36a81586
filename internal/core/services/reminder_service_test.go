package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/core/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/SscSPs/job_tracker_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const demoEmail = "demo@example.com"

type ReminderServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	scheduler *MockJobScheduler
	notifier  *MockNotifier
	svc       *portssvc.ServiceContainer
	userID    string
	appID     string
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.scheduler = new(MockJobScheduler)
	suite.notifier = new(MockNotifier)
	suite.userID = "user-1"
	suite.store.PutUser(domain.User{UserID: suite.userID, Email: "ada@example.com", Name: "Ada"})
	suite.store.PutUser(domain.User{UserID: "demo", Email: "Demo@Example.com", Name: "Demo"})

	suite.svc = services.NewServiceContainer(
		*memory.NewRepositoryProvider(suite.store),
		services.Dependencies{
			Scheduler: suite.scheduler,
			Notifier:  suite.notifier,
			Policy:    services.DemoUserPolicy{DemoEmail: demoEmail},
		},
		services.WithClock(func() time.Time { return fixedNow }),
	)

	app, err := suite.svc.Application.CreateApplication(suite.ctx, suite.userID, dto.CreateApplicationRequest{
		JobTitle:    "Engineer",
		CompanyName: "Acme",
		Status:      domain.StatusApplied,
	})
	suite.Require().NoError(err)
	suite.appID = app.ApplicationID
}

func (suite *ReminderServiceTestSuite) create(alarm time.Time) *domain.ReminderResult {
	res, err := suite.svc.Reminder.CreateReminder(suite.ctx, suite.userID, suite.appID, dto.CreateReminderRequest{
		AlarmDate: alarm,
		Message:   "follow up",
	})
	suite.Require().NoError(err)
	return res
}

func (suite *ReminderServiceTestSuite) TestCreate_FutureAlarmDelay() {
	alarm := fixedNow.Add(48 * time.Hour)
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, 48*time.Hour).Return("job-1", nil).Once()

	res := suite.create(alarm)

	suite.False(res.SchedulingFailed())
	suite.Require().NotNil(res.Reminder.JobID)
	suite.Equal("job-1", *res.Reminder.JobID)
	suite.True(res.Reminder.IsScheduled())
	suite.scheduler.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestCreate_PastAlarmFiresImmediately() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, time.Duration(0)).Return("job-1", nil).Once()

	res := suite.create(fixedNow.Add(-time.Hour))

	suite.True(res.Reminder.IsScheduled())
	suite.scheduler.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestCreate_DemoUserIsNotScheduled() {
	app, err := suite.svc.Application.CreateApplication(suite.ctx, "demo", dto.CreateApplicationRequest{JobTitle: "Demo", CompanyName: "Acme"})
	suite.Require().NoError(err)

	res, err := suite.svc.Reminder.CreateReminder(suite.ctx, "demo", app.ApplicationID, dto.CreateReminderRequest{
		AlarmDate: fixedNow.Add(time.Hour),
		Message:   "demo",
	})
	suite.Require().NoError(err)

	suite.False(res.SchedulingFailed())
	suite.Nil(res.Reminder.JobID)
	suite.scheduler.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestCreate_StoppedIsNotScheduled() {
	res, err := suite.svc.Reminder.CreateReminder(suite.ctx, suite.userID, suite.appID, dto.CreateReminderRequest{
		AlarmDate: fixedNow.Add(time.Hour),
		Message:   "later",
		Status:    ptr(domain.ReminderStopped),
	})
	suite.Require().NoError(err)
	suite.Nil(res.Reminder.JobID)
	suite.scheduler.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestCreate_EnqueueFailureIsReportedNotFatal() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("redis down")).Once()

	res := suite.create(fixedNow.Add(time.Hour))
	suite.True(res.SchedulingFailed())
	suite.ErrorIs(res.SchedulingErr, apperrors.ErrSchedulingFailed)
	suite.Nil(res.Reminder.JobID)

	reminders, err := suite.svc.Reminder.ListReminders(suite.ctx, suite.userID, suite.appID)
	suite.Require().NoError(err)
	suite.Len(reminders, 1, "reminder is kept")

	resp := dto.ToReminderResultResponse(res)
	suite.NotEmpty(resp.Warning)
	suite.False(resp.Scheduled)

	// Any later update of the still-active reminder retries.
	suite.scheduler.On("Enqueue", mock.Anything, res.Reminder.ReminderID, mock.Anything).Return("job-2", nil).Once()
	updated, err := suite.svc.Reminder.UpdateReminder(suite.ctx, suite.userID, res.Reminder.ReminderID, dto.UpdateReminderRequest{
		Message: ptr("follow up again"),
	})
	suite.Require().NoError(err)
	suite.False(updated.SchedulingFailed())
	suite.Require().NotNil(updated.Reminder.JobID)
	suite.Equal("job-2", *updated.Reminder.JobID)
	suite.scheduler.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestUpdate_MovedAlarmReplacesJob() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, time.Hour).Return("job-1", nil).Once()
	res := suite.create(fixedNow.Add(time.Hour))

	suite.scheduler.On("Cancel", mock.Anything, "job-1").Return(nil).Once()
	suite.scheduler.On("Enqueue", mock.Anything, res.Reminder.ReminderID, 3*time.Hour).Return("job-2", nil).Once()

	updated, err := suite.svc.Reminder.UpdateReminder(suite.ctx, suite.userID, res.Reminder.ReminderID, dto.UpdateReminderRequest{
		AlarmDate: ptr(fixedNow.Add(3 * time.Hour)),
	})
	suite.Require().NoError(err)
	suite.Equal("job-2", *updated.Reminder.JobID)
	suite.scheduler.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestUpdate_MessageOnlyKeepsJob() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-1", nil).Once()
	res := suite.create(fixedNow.Add(time.Hour))

	updated, err := suite.svc.Reminder.UpdateReminder(suite.ctx, suite.userID, res.Reminder.ReminderID, dto.UpdateReminderRequest{
		Message: ptr("new text"),
	})
	suite.Require().NoError(err)
	suite.Equal("job-1", *updated.Reminder.JobID)
	suite.scheduler.AssertNotCalled(suite.T(), "Cancel", mock.Anything, mock.Anything)
	suite.scheduler.AssertNumberOfCalls(suite.T(), "Enqueue", 1)
}

func (suite *ReminderServiceTestSuite) TestUpdate_StopThenResume() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-1", nil).Once()
	res := suite.create(fixedNow.Add(time.Hour))

	suite.scheduler.On("Cancel", mock.Anything, "job-1").Return(nil).Once()
	stopped, err := suite.svc.Reminder.UpdateReminder(suite.ctx, suite.userID, res.Reminder.ReminderID, dto.UpdateReminderRequest{
		Status: ptr(domain.ReminderStopped),
	})
	suite.Require().NoError(err)
	suite.False(stopped.Reminder.IsScheduled())

	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-2", nil).Once()
	resumed, err := suite.svc.Reminder.UpdateReminder(suite.ctx, suite.userID, res.Reminder.ReminderID, dto.UpdateReminderRequest{
		Status: ptr(domain.ReminderActive),
	})
	suite.Require().NoError(err)
	suite.Equal("job-2", *resumed.Reminder.JobID)
	suite.scheduler.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestDelete_CancelFailureIsTolerated() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-1", nil).Once()
	res := suite.create(fixedNow.Add(time.Hour))
	suite.scheduler.On("Cancel", mock.Anything, "job-1").Return(errors.New("timeout")).Once()

	suite.Require().NoError(suite.svc.Reminder.DeleteReminder(suite.ctx, suite.userID, res.Reminder.ReminderID))

	reminders, err := suite.svc.Reminder.ListReminders(suite.ctx, suite.userID, suite.appID)
	suite.Require().NoError(err)
	suite.Empty(reminders)
	suite.scheduler.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestDispatcher_NotifiesExactlyOnce() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-1", nil).Once()
	res := suite.create(fixedNow.Add(-time.Minute))
	job := domain.ReminderJob{JobID: "job-1", ReminderID: res.Reminder.ReminderID}

	suite.notifier.On("NotifyReminder", mock.Anything, mock.MatchedBy(func(n domain.ReminderNotice) bool {
		return n.UserEmail == "ada@example.com" && n.JobTitle == "Engineer" && n.CompanyName == "Acme"
	})).Return(nil).Once()

	suite.Require().NoError(suite.svc.ReminderDispatcher.HandleReminderFired(suite.ctx, job))
	suite.Require().NoError(suite.svc.ReminderDispatcher.HandleReminderFired(suite.ctx, job))

	suite.notifier.AssertNumberOfCalls(suite.T(), "NotifyReminder", 1)
	reminders, err := suite.svc.Reminder.ListReminders(suite.ctx, suite.userID, suite.appID)
	suite.Require().NoError(err)
	suite.Equal(domain.ReminderDone, reminders[0].Status)
}

func (suite *ReminderServiceTestSuite) TestDispatcher_StaleJobIsSkipped() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-2", nil).Once()
	res := suite.create(fixedNow.Add(time.Hour))

	err := suite.svc.ReminderDispatcher.HandleReminderFired(suite.ctx, domain.ReminderJob{JobID: "job-1", ReminderID: res.Reminder.ReminderID})
	suite.Require().NoError(err)
	suite.notifier.AssertNotCalled(suite.T(), "NotifyReminder", mock.Anything, mock.Anything)
}

func (suite *ReminderServiceTestSuite) TestDispatcher_SendFailureIsNotRetried() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job-1", nil).Once()
	res := suite.create(fixedNow)
	suite.notifier.On("NotifyReminder", mock.Anything, mock.Anything).Return(errors.New("smtp 421")).Once()

	err := suite.svc.ReminderDispatcher.HandleReminderFired(suite.ctx, domain.ReminderJob{JobID: "job-1", ReminderID: res.Reminder.ReminderID})
	suite.NoError(err)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestListUserReminders() {
	suite.scheduler.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return("job", nil)
	late := suite.create(fixedNow.Add(72 * time.Hour))
	early := suite.create(fixedNow.Add(time.Hour))
	stopped, err := suite.svc.Reminder.CreateReminder(suite.ctx, suite.userID, suite.appID, dto.CreateReminderRequest{
		AlarmDate: fixedNow.Add(24 * time.Hour),
		Message:   "maybe",
		Status:    ptr(domain.ReminderStopped),
	})
	suite.Require().NoError(err)

	ids := func(params dto.ListUserRemindersParams) []string {
		reminders, err := suite.svc.Reminder.ListUserReminders(suite.ctx, suite.userID, params)
		suite.Require().NoError(err)
		out := make([]string, len(reminders))
		for i, r := range reminders {
			out[i] = r.ReminderID
		}
		return out
	}

	suite.Equal([]string{late.Reminder.ReminderID, stopped.Reminder.ReminderID, early.Reminder.ReminderID},
		ids(dto.ListUserRemindersParams{}))
	suite.Equal([]string{early.Reminder.ReminderID, late.Reminder.ReminderID},
		ids(dto.ListUserRemindersParams{SortBy: domain.OrderOldest, StatusFilter: "ACTIVE"}))
	suite.Equal([]string{stopped.Reminder.ReminderID}, ids(dto.ListUserRemindersParams{StatusFilter: "STOPPED"}))
	suite.Empty(ids(dto.ListUserRemindersParams{StatusFilter: "DONE"}))

	_, err = suite.svc.Reminder.ListUserReminders(suite.ctx, suite.userID, dto.ListUserRemindersParams{StatusFilter: "UPCOMING"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	others, err := suite.svc.Reminder.ListUserReminders(suite.ctx, "demo", dto.ListUserRemindersParams{})
	suite.Require().NoError(err)
	suite.Empty(others)
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

func TestFireDelay(t *testing.T) {
	assert.Equal(t, 2*time.Hour, services.FireDelay(fixedNow.Add(2*time.Hour), fixedNow))
	assert.Equal(t, time.Duration(0), services.FireDelay(fixedNow.Add(-time.Hour), fixedNow))
	assert.Equal(t, time.Duration(0), services.FireDelay(fixedNow, fixedNow))
}

func TestDemoUserPolicy(t *testing.T) {
	policy := services.DemoUserPolicy{DemoEmail: demoEmail}
	assert.False(t, policy.ShouldSchedule(domain.User{Email: "DEMO@example.com"}))
	assert.True(t, policy.ShouldSchedule(domain.User{Email: "ada@example.com"}))
	assert.True(t, services.DemoUserPolicy{}.ShouldSchedule(domain.User{Email: demoEmail}))
}
