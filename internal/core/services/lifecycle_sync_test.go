package services_test

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/job_tracker_app/internal/dto"
)

// seedInterview stores an interview directly, bypassing the ledger, like rows
// written before interviews were linked to entries.
func (suite *LifecycleServiceTestSuite) seedInterview(appID string, at time.Time, notes string) domain.Interview {
	iv := domain.Interview{
		InterviewID:   fmt.Sprintf("legacy-%d", at.Unix()),
		ApplicationID: appID,
		ScheduledAt:   at,
		Notes:         notes,
		Status:        domain.InterviewStatusAt(at, fixedNow),
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	}
	err := suite.store.WithinLifecycleTx(suite.ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		return tx.SaveInterview(ctx, iv)
	})
	suite.Require().NoError(err)
	return iv
}

func (suite *LifecycleServiceTestSuite) interviews(appID string) []domain.Interview {
	interviews, err := suite.svc.Interview.ListInterviews(suite.ctx, suite.userID, appID)
	suite.Require().NoError(err)
	return interviews
}

func (suite *LifecycleServiceTestSuite) entries(appID string) []domain.LedgerEntry {
	entries, err := suite.svc.Ledger.ListLedgerEntries(suite.ctx, suite.userID, appID)
	suite.Require().NoError(err)
	return entries
}

// requireConsistent checks what every ledger write must leave behind: a
// non-empty ledger, the cached status equal to the latest entry, and exactly
// one interview per INTERVIEW entry at the entry's time.
func (suite *LifecycleServiceTestSuite) requireConsistent(appID, step string) {
	entries := suite.entries(appID)
	suite.Require().NotEmpty(entries, step)

	latest, ok := lifecycle.Latest(entries)
	suite.Require().True(ok, step)
	suite.Require().Equal(latest.Status, suite.status(appID), step)

	byID := make(map[string]domain.LedgerEntry)
	for _, e := range entries {
		if e.Status == domain.StatusInterview {
			byID[e.EntryID] = e
		}
	}
	interviews := suite.interviews(appID)
	suite.Require().Len(interviews, len(byID), step)
	seen := make(map[string]bool)
	for _, iv := range interviews {
		suite.Require().NotNil(iv.LedgerEntryID, step)
		entry, ok := byID[*iv.LedgerEntryID]
		suite.Require().True(ok, "%s: interview %s points at no INTERVIEW entry", step, iv.InterviewID)
		suite.Require().False(seen[entry.EntryID], "%s: entry %s has two interviews", step, entry.EntryID)
		seen[entry.EntryID] = true
		suite.Require().True(entry.OccurredAt.Equal(iv.ScheduledAt), step)
	}
}

func (suite *LifecycleServiceTestSuite) TestRandomLedgerWritesKeepLifecycleConsistent() {
	statuses := domain.AllApplicationStatuses()
	r := rand.New(rand.NewSource(20240615))
	randomTime := func() time.Time {
		// Few distinct instants, so equal timestamps are common.
		return day(time.Month(1+r.Intn(6)), 1+r.Intn(3))
	}

	app := suite.createApp("Engineer", domain.StatusApplied, day(time.January, 1))
	suite.requireConsistent(app.ApplicationID, "create application")

	for i := 0; i < 300; i++ {
		entries := suite.entries(app.ApplicationID)
		target := entries[r.Intn(len(entries))]

		var (
			step string
			err  error
		)
		switch op := r.Intn(3); {
		case op == 0 || len(entries) < 2:
			status := statuses[r.Intn(len(statuses))]
			step = fmt.Sprintf("step %d: create %s", i, status)
			_, err = suite.svc.Ledger.CreateLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, dto.CreateLedgerEntryRequest{
				Status:     status,
				OccurredAt: randomTime(),
			})
		case op == 1:
			req := dto.UpdateLedgerEntryRequest{}
			if r.Intn(2) == 0 {
				req.Status = ptr(statuses[r.Intn(len(statuses))])
			}
			if req.Status == nil || r.Intn(2) == 0 {
				req.OccurredAt = ptr(randomTime())
			}
			step = fmt.Sprintf("step %d: update %s", i, target.Status)
			_, err = suite.svc.Ledger.UpdateLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, target.EntryID, req)
		default:
			step = fmt.Sprintf("step %d: delete %s", i, target.Status)
			_, err = suite.svc.Ledger.DeleteLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, target.EntryID)
		}
		suite.Require().NoError(err, step)
		suite.requireConsistent(app.ApplicationID, step)
	}

	// Deleting everything ends in a single synthesized DRAFT.
	for _, e := range suite.entries(app.ApplicationID) {
		_, err := suite.svc.Ledger.DeleteLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, e.EntryID)
		suite.Require().NoError(err)
		suite.requireConsistent(app.ApplicationID, "drain "+e.EntryID)
	}
	entries := suite.entries(app.ApplicationID)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.StatusDraft, entries[0].Status)
}

func (suite *LifecycleServiceTestSuite) TestInterviewEntryAdoptsUnlinkedInterview() {
	app := suite.createApp("Engineer", domain.StatusApplied, day(time.June, 1))
	at := day(time.June, 20)
	legacy := suite.seedInterview(app.ApplicationID, at, "bring portfolio")

	res := suite.addEntry(app.ApplicationID, domain.StatusInterview, at)

	interviews := suite.interviews(app.ApplicationID)
	suite.Require().Len(interviews, 1, "existing interview is adopted, not duplicated")
	suite.Equal(legacy.InterviewID, interviews[0].InterviewID)
	suite.Require().NotNil(interviews[0].LedgerEntryID)
	suite.Equal(res.Entry.EntryID, *interviews[0].LedgerEntryID)
	suite.Equal("bring portfolio", interviews[0].Notes, "entry without notes keeps the interview's")
	suite.requireConsistent(app.ApplicationID, "after adopt")
}

func (suite *LifecycleServiceTestSuite) TestRestatusToInterviewAdoptsUnlinkedInterview() {
	app := suite.createApp("Engineer", domain.StatusApplied, day(time.June, 1))
	at := day(time.June, 5)
	res := suite.addEntry(app.ApplicationID, domain.StatusOffer, at)
	legacy := suite.seedInterview(app.ApplicationID, at, "")

	_, err := suite.svc.Ledger.UpdateLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, res.Entry.EntryID, dto.UpdateLedgerEntryRequest{
		Status: ptr(domain.StatusInterview),
		Notes:  ptr("panel"),
	})
	suite.Require().NoError(err)

	interviews := suite.interviews(app.ApplicationID)
	suite.Require().Len(interviews, 1)
	suite.Equal(legacy.InterviewID, interviews[0].InterviewID)
	suite.Equal("panel", interviews[0].Notes)
	suite.Equal(domain.InterviewDone, interviews[0].Status)
	suite.Equal(domain.StatusInterview, suite.status(app.ApplicationID))
	suite.requireConsistent(app.ApplicationID, "after re-status")
}

func (suite *LifecycleServiceTestSuite) TestRestatusToInterviewCreatesInterview() {
	app := suite.createApp("Engineer", domain.StatusApplied, day(time.June, 1))
	res := suite.addEntry(app.ApplicationID, domain.StatusRejected, day(time.June, 30))
	suite.Empty(suite.interviews(app.ApplicationID))

	_, err := suite.svc.Ledger.UpdateLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, res.Entry.EntryID, dto.UpdateLedgerEntryRequest{
		Status: ptr(domain.StatusInterview),
	})
	suite.Require().NoError(err)

	interviews := suite.interviews(app.ApplicationID)
	suite.Require().Len(interviews, 1)
	suite.Equal(day(time.June, 30), interviews[0].ScheduledAt)
	suite.Equal(domain.InterviewUpcoming, interviews[0].Status)
	suite.requireConsistent(app.ApplicationID, "after re-status")
}

func (suite *LifecycleServiceTestSuite) TestUpdatingInterviewEntryRecreatesMissingInterview() {
	app := suite.createApp("Engineer", domain.StatusApplied, day(time.June, 1))
	res := suite.addEntry(app.ApplicationID, domain.StatusInterview, day(time.June, 10))
	interviews := suite.interviews(app.ApplicationID)
	suite.Require().Len(interviews, 1)

	// Lose the interview behind the ledger's back.
	err := suite.store.WithinLifecycleTx(suite.ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		return tx.DeleteInterview(ctx, interviews[0].InterviewID)
	})
	suite.Require().NoError(err)
	suite.Empty(suite.interviews(app.ApplicationID))

	moved := day(time.June, 12)
	_, err = suite.svc.Ledger.UpdateLedgerEntry(suite.ctx, suite.userID, app.ApplicationID, res.Entry.EntryID, dto.UpdateLedgerEntryRequest{OccurredAt: &moved})
	suite.Require().NoError(err)

	interviews = suite.interviews(app.ApplicationID)
	suite.Require().Len(interviews, 1)
	suite.Equal(moved, interviews[0].ScheduledAt)
	suite.requireConsistent(app.ApplicationID, "after self-heal")
}

// An interview row without a link is matched to the INTERVIEW entry at the
// same time when edited or deleted through the interview API.
func (suite *LifecycleServiceTestSuite) TestUnlinkedInterviewMatchedByTime() {
	app := suite.createApp("Engineer", domain.StatusApplied, day(time.June, 1))
	at := day(time.June, 8)

	// An INTERVIEW entry whose interview predates the link column.
	entry := &domain.LedgerEntry{
		EntryID:       "entry-legacy",
		ApplicationID: app.ApplicationID,
		Status:        domain.StatusInterview,
		OccurredAt:    at,
		CreatedAt:     fixedNow,
	}
	err := suite.store.WithinLifecycleTx(suite.ctx, func(ctx context.Context, tx portsrepo.LifecycleTx) error {
		if err := tx.SaveLedgerEntry(ctx, entry); err != nil {
			return err
		}
		return tx.UpdateApplicationStatus(ctx, app.ApplicationID, domain.StatusInterview, suite.userID, fixedNow)
	})
	suite.Require().NoError(err)
	legacy := suite.seedInterview(app.ApplicationID, at, "")

	moved := day(time.June, 9)
	updated, err := suite.svc.Interview.UpdateInterview(suite.ctx, suite.userID, legacy.InterviewID, dto.UpdateInterviewRequest{ScheduledAt: &moved})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.LedgerEntryID)
	suite.Equal(entry.EntryID, *updated.LedgerEntryID, "link recorded on first edit")

	entries := suite.entries(app.ApplicationID)
	suite.Require().Len(entries, 2)
	suite.Equal(moved, entries[1].OccurredAt, "entry moved with the interview")
	suite.requireConsistent(app.ApplicationID, "after update")

	suite.Require().NoError(suite.svc.Interview.DeleteInterview(suite.ctx, suite.userID, legacy.InterviewID))
	suite.Empty(suite.interviews(app.ApplicationID))
	suite.Len(suite.entries(app.ApplicationID), 1, "entry deleted with the interview")
	suite.Equal(domain.StatusApplied, suite.status(app.ApplicationID))
	suite.requireConsistent(app.ApplicationID, "after delete")
}

func (suite *LifecycleServiceTestSuite) createAppAt(title, company string, priority domain.Priority) *domain.Application {
	app, err := suite.svc.Application.CreateApplication(suite.ctx, suite.userID, dto.CreateApplicationRequest{
		JobTitle:    title,
		CompanyName: company,
		Priority:    priority,
	})
	suite.Require().NoError(err)
	return app
}

func (suite *LifecycleServiceTestSuite) TestListApplications_TitleTiesBreakOnCompany() {
	zeta := suite.createAppAt("Engineer", "Zeta", domain.PriorityLow)
	alpha := suite.createAppAt("engineer", "alpha", domain.PriorityHigh)
	beta := suite.createAppAt("Engineer", "Beta", domain.PriorityLow)
	analyst := suite.createAppAt("Analyst", "Zeta", domain.PriorityLow)

	ids := func(sort domain.SortMode) []string {
		resp, err := suite.svc.Application.ListApplications(suite.ctx, suite.userID, dto.ListApplicationsParams{Sort: sort})
		suite.Require().NoError(err)
		out := make([]string, len(resp.Applications))
		for i, a := range resp.Applications {
			out[i] = a.ApplicationID
		}
		return out
	}

	suite.Equal([]string{analyst.ApplicationID, alpha.ApplicationID, beta.ApplicationID, zeta.ApplicationID},
		ids(domain.SortAlphabetical))
	suite.Equal([]string{alpha.ApplicationID, analyst.ApplicationID, beta.ApplicationID, zeta.ApplicationID},
		ids(domain.SortPriority), "equal priority orders by title, then company")
}

func (suite *LifecycleServiceTestSuite) TestListUserInterviews() {
	first := suite.createApp("Engineer", domain.StatusApplied, day(time.June, 1))
	second := suite.createApp("Analyst", domain.StatusApplied, day(time.June, 1))
	suite.addEntry(first.ApplicationID, domain.StatusInterview, day(time.June, 5))
	suite.addEntry(second.ApplicationID, domain.StatusInterview, day(time.July, 5))
	suite.addEntry(first.ApplicationID, domain.StatusInterview, day(time.August, 5))

	scheduled := func(params dto.ListUserInterviewsParams) []time.Time {
		interviews, err := suite.svc.Interview.ListUserInterviews(suite.ctx, suite.userID, params)
		suite.Require().NoError(err)
		out := make([]time.Time, len(interviews))
		for i, iv := range interviews {
			out[i] = iv.ScheduledAt
		}
		return out
	}

	suite.Equal([]time.Time{day(time.August, 5), day(time.July, 5), day(time.June, 5)},
		scheduled(dto.ListUserInterviewsParams{}), "newest first by default")
	suite.Equal([]time.Time{day(time.June, 5), day(time.July, 5), day(time.August, 5)},
		scheduled(dto.ListUserInterviewsParams{SortBy: domain.OrderOldest, StatusFilter: "ALL"}))
	suite.Equal([]time.Time{day(time.July, 5), day(time.August, 5)},
		scheduled(dto.ListUserInterviewsParams{SortBy: domain.OrderOldest, StatusFilter: "UPCOMING"}))
	suite.Equal([]time.Time{day(time.June, 5)},
		scheduled(dto.ListUserInterviewsParams{StatusFilter: "DONE"}))

	_, err := suite.svc.Interview.ListUserInterviews(suite.ctx, suite.userID, dto.ListUserInterviewsParams{StatusFilter: "SOON"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Interview.ListUserInterviews(suite.ctx, suite.userID, dto.ListUserInterviewsParams{SortBy: "SIDEWAYS"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	others, err := suite.svc.Interview.ListUserInterviews(suite.ctx, "someone-else", dto.ListUserInterviewsParams{})
	suite.Require().NoError(err)
	suite.Empty(others)
}
