package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seedApplication(t *testing.T, store *memory.Store, userID, appID string) {
	t.Helper()
	err := store.WithinLifecycleTx(context.Background(), func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		c, err := tx.UpsertCompanyByName(ctx, domain.Company{CompanyID: "c-" + appID, UserID: userID, Name: "Acme"})
		if err != nil {
			return err
		}
		return tx.SaveApplication(ctx, domain.Application{
			ApplicationID: appID,
			UserID:        userID,
			CompanyID:     c.CompanyID,
			JobTitle:      "Engineer",
			Status:        domain.StatusDraft,
			AuditFields:   domain.AuditFields{CreatedAt: t0},
		})
	})
	require.NoError(t, err)
}

func TestLifecycleTxRollsBackOnError(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")

	boom := errors.New("boom")
	err := store.WithinLifecycleTx(context.Background(), func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		entry := &domain.LedgerEntry{EntryID: "e1", ApplicationID: "a1", Status: domain.StatusApplied, OccurredAt: t0}
		require.NoError(t, tx.SaveLedgerEntry(ctx, entry))
		require.NoError(t, tx.UpdateApplicationStatus(ctx, "a1", domain.StatusApplied, "u1", t0))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	app, err := store.FindApplicationByID(context.Background(), "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, app.Status)
	assert.Empty(t, app.LedgerEntries)
}

func TestSaveLedgerEntryAssignsIncreasingSequence(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")

	var first, second domain.LedgerEntry
	err := store.WithinLifecycleTx(context.Background(), func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		first = domain.LedgerEntry{EntryID: "e1", ApplicationID: "a1", Status: domain.StatusApplied, OccurredAt: t0}
		second = domain.LedgerEntry{EntryID: "e2", ApplicationID: "a1", Status: domain.StatusInterview, OccurredAt: t0}
		if err := tx.SaveLedgerEntry(ctx, &first); err != nil {
			return err
		}
		return tx.SaveLedgerEntry(ctx, &second)
	})
	require.NoError(t, err)
	assert.Less(t, first.Sequence, second.Sequence)

	app, err := store.FindApplicationByID(context.Background(), "u1", "a1")
	require.NoError(t, err)
	require.Len(t, app.LedgerEntries, 2)
	assert.Equal(t, "e1", app.LedgerEntries[0].EntryID)
	assert.Equal(t, "Acme", app.Company.Name)
}

func TestApplicationsAreScopedToOwner(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")

	_, err := store.FindApplicationByID(context.Background(), "u2", "a1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	apps, err := store.ListApplicationsWithLedger(context.Background(), "u2", domain.ApplicationFilter{})
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestListApplicationsFilters(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")

	apps, err := store.ListApplicationsWithLedger(context.Background(), "u1", domain.ApplicationFilter{Search: "acm"})
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	apps, err = store.ListApplicationsWithLedger(context.Background(), "u1", domain.ApplicationFilter{
		Statuses: []domain.ApplicationStatus{domain.StatusApplied},
	})
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestDeleteLedgerEntryUnlinksInterview(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	entryID := "e1"

	err := store.WithinLifecycleTx(context.Background(), func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		entry := &domain.LedgerEntry{EntryID: entryID, ApplicationID: "a1", Status: domain.StatusInterview, OccurredAt: t0}
		if err := tx.SaveLedgerEntry(ctx, entry); err != nil {
			return err
		}
		if err := tx.SaveInterview(ctx, domain.Interview{InterviewID: "i1", ApplicationID: "a1", LedgerEntryID: &entryID, ScheduledAt: t0}); err != nil {
			return err
		}
		return tx.DeleteLedgerEntry(ctx, "a1", entryID)
	})
	require.NoError(t, err)

	iv, err := store.FindInterviewByID(context.Background(), "u1", "i1")
	require.NoError(t, err)
	assert.Nil(t, iv.LedgerEntryID)
}

func TestFindInterviewForEntryFallsBackToScheduledTime(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")

	err := store.WithinLifecycleTx(context.Background(), func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		return tx.SaveInterview(ctx, domain.Interview{InterviewID: "legacy", ApplicationID: "a1", ScheduledAt: t0})
	})
	require.NoError(t, err)

	iv, err := store.FindInterviewForEntry(context.Background(), "a1", "unknown-entry", t0)
	require.NoError(t, err)
	require.NotNil(t, iv)
	assert.Equal(t, "legacy", iv.InterviewID)

	iv, err = store.FindInterviewForEntry(context.Background(), "a1", "unknown-entry", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, iv)
}

func TestDeleteApplicationCascades(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	ctx := context.Background()
	require.NoError(t, store.SaveReminder(ctx, domain.Reminder{ReminderID: "r1", ApplicationID: "a1", UserID: "u1", Status: domain.ReminderActive}))

	err := store.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		return tx.DeleteApplication(ctx, "a1")
	})
	require.NoError(t, err)

	reminders, err := store.ListReminders(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestMarkReminderFiredIsConditional(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	ctx := context.Background()
	require.NoError(t, store.SaveReminder(ctx, domain.Reminder{ReminderID: "r1", ApplicationID: "a1", UserID: "u1", Status: domain.ReminderActive}))
	job := "job-1"
	require.NoError(t, store.SetReminderJobID(ctx, "r1", &job, t0))

	fired, err := store.MarkReminderFired(ctx, "r1", "job-old", t0)
	require.NoError(t, err)
	assert.False(t, fired)

	fired, err = store.MarkReminderFired(ctx, "r1", job, t0)
	require.NoError(t, err)
	assert.True(t, fired)

	fired, err = store.MarkReminderFired(ctx, "r1", job, t0)
	require.NoError(t, err)
	assert.False(t, fired)

	r, err := store.FindReminderByID(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderDone, r.Status)
}

func TestCompanyNamesAreUniquePerUser(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveCompany(ctx, domain.Company{CompanyID: "c1", UserID: "u1", Name: "Acme"}))

	err := store.SaveCompany(ctx, domain.Company{CompanyID: "c2", UserID: "u1", Name: "ACME"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	assert.NoError(t, store.SaveCompany(ctx, domain.Company{CompanyID: "c3", UserID: "u2", Name: "Acme"}))
}

func TestFailOnInjectsAndClears(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	ctx := context.Background()
	boom := errors.New("boom")

	store.FailOn("UpdateApplicationStatus", boom)
	err := store.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		return tx.UpdateApplicationStatus(ctx, "a1", domain.StatusApplied, "u1", t0)
	})
	assert.ErrorIs(t, err, boom)

	store.FailOn("UpdateApplicationStatus", nil)
	err = store.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		return tx.UpdateApplicationStatus(ctx, "a1", domain.StatusApplied, "u1", t0)
	})
	assert.NoError(t, err)
}

func TestFindReminderNoticeWithoutUser(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	ctx := context.Background()
	require.NoError(t, store.SaveReminder(ctx, domain.Reminder{ReminderID: "r1", ApplicationID: "a1", UserID: "u1", Message: "follow up"}))

	notice, err := store.FindReminderNotice(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, notice.UserEmail)
	assert.Equal(t, "Engineer", notice.JobTitle)
	assert.Equal(t, "Acme", notice.CompanyName)

	store.PutUser(domain.User{UserID: "u1", Email: "ada@example.com", Name: "Ada"})
	notice, err = store.FindReminderNotice(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", notice.UserEmail)
}

func TestListUserInterviewsScopesFiltersAndOrders(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	seedApplication(t, store, "u1", "a2")
	seedApplication(t, store, "u2", "b1")
	ctx := context.Background()

	err := store.WithinLifecycleTx(ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		for _, iv := range []domain.Interview{
			{InterviewID: "i1", ApplicationID: "a1", ScheduledAt: t0, Status: domain.InterviewDone},
			{InterviewID: "i2", ApplicationID: "a2", ScheduledAt: t0.Add(48 * time.Hour), Status: domain.InterviewUpcoming},
			{InterviewID: "i3", ApplicationID: "a1", ScheduledAt: t0.Add(24 * time.Hour), Status: domain.InterviewUpcoming},
			{InterviewID: "i4", ApplicationID: "b1", ScheduledAt: t0, Status: domain.InterviewUpcoming},
		} {
			if err := tx.SaveInterview(ctx, iv); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	ids := func(filter domain.InterviewFilter) []string {
		out, err := store.ListUserInterviews(ctx, "u1", filter)
		require.NoError(t, err)
		var got []string
		for _, iv := range out {
			got = append(got, iv.InterviewID)
		}
		return got
	}
	assert.Equal(t, []string{"i2", "i3", "i1"}, ids(domain.InterviewFilter{Order: domain.OrderNewest}))
	assert.Equal(t, []string{"i1", "i3", "i2"}, ids(domain.InterviewFilter{Order: domain.OrderOldest}))
	assert.Equal(t, []string{"i3", "i2"}, ids(domain.InterviewFilter{Status: domain.InterviewUpcoming, Order: domain.OrderOldest}))
}

func TestListUserRemindersScopesFiltersAndOrders(t *testing.T) {
	store := memory.NewStore()
	seedApplication(t, store, "u1", "a1")
	seedApplication(t, store, "u2", "b1")
	ctx := context.Background()
	for _, r := range []domain.Reminder{
		{ReminderID: "r1", ApplicationID: "a1", UserID: "u1", AlarmDate: t0, Status: domain.ReminderActive},
		{ReminderID: "r2", ApplicationID: "a1", UserID: "u1", AlarmDate: t0.Add(time.Hour), Status: domain.ReminderStopped},
		{ReminderID: "r3", ApplicationID: "a1", UserID: "u1", AlarmDate: t0, Status: domain.ReminderActive},
		{ReminderID: "r4", ApplicationID: "b1", UserID: "u2", AlarmDate: t0, Status: domain.ReminderActive},
	} {
		require.NoError(t, store.SaveReminder(ctx, r))
	}

	out, err := store.ListUserReminders(ctx, "u1", domain.ReminderFilter{Order: domain.OrderNewest})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "r2", out[0].ReminderID)
	assert.Equal(t, "r1", out[1].ReminderID, "equal alarms order by ID")

	out, err = store.ListUserReminders(ctx, "u1", domain.ReminderFilter{Status: domain.ReminderActive, Order: domain.OrderOldest})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "r1", out[0].ReminderID)
	assert.Equal(t, "r3", out[1].ReminderID)
}
