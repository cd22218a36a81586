package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/adapters/queue"
	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/core/services"
	"github.com/SscSPs/job_tracker_app/internal/dto"
	"github.com/SscSPs/job_tracker_app/internal/handlers"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/SscSPs/job_tracker_app/internal/repositories/memory"
	"github.com/SscSPs/job_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) ListLedgerEntries(ctx context.Context, userID, applicationID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) CreateLedgerEntry(ctx context.Context, userID, applicationID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerMutationResult, error) {
	args := m.Called(ctx, userID, applicationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMutationResult), args.Error(1)
}

func (m *MockLedgerService) UpdateLedgerEntry(ctx context.Context, userID, applicationID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerMutationResult, error) {
	args := m.Called(ctx, userID, applicationID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMutationResult), args.Error(1)
}

func (m *MockLedgerService) DeleteLedgerEntry(ctx context.Context, userID, applicationID, entryID string) (*domain.LedgerMutationResult, error) {
	args := m.Called(ctx, userID, applicationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMutationResult), args.Error(1)
}

const testJWTSecret = "test-secret-for-handler-tests"

func generateTestToken(userID string) string {
	signed, err := utils.GenerateJWT(userID, testJWTSecret, time.Hour)
	if err != nil {
		panic(fmt.Sprintf("failed to sign test token: %v", err))
	}
	return signed
}

func newRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if err := handlers.RegisterValidators(); err != nil {
		panic(err)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAPIRoutes(v1, services)
	return r
}

func doRequest(r *gin.Engine, method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- Ledger handler with a mocked service ---

type LedgerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockLedger  *MockLedgerService
	userID      string
	application string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerService)
	suite.router = newRouter(&portssvc.ServiceContainer{Ledger: suite.mockLedger})
	suite.userID = uuid.NewString()
	suite.application = uuid.NewString()
}

func (suite *LedgerHandlerTestSuite) url(suffix string) string {
	return fmt.Sprintf("/api/v1/applications/%s/ledger%s", suite.application, suffix)
}

func (suite *LedgerHandlerTestSuite) TestCreateLedgerEntry_Success() {
	occurredAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entry := &domain.LedgerEntry{EntryID: "e1", ApplicationID: suite.application, Status: domain.StatusApplied, OccurredAt: occurredAt}

	suite.mockLedger.On("CreateLedgerEntry",
		mock.Anything,
		suite.userID,
		suite.application,
		mock.MatchedBy(func(req dto.CreateLedgerEntryRequest) bool {
			return req.Status == domain.StatusApplied && req.OccurredAt.Equal(occurredAt)
		}),
	).Return(&domain.LedgerMutationResult{Entry: entry, ApplicationStatus: domain.StatusApplied}, nil).Once()

	w := doRequest(suite.router, http.MethodPost, suite.url(""), suite.userID, map[string]any{
		"status":     "APPLIED",
		"occurredAt": occurredAt.Format(time.RFC3339),
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LedgerMutationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusApplied, resp.ApplicationStatus)
	suite.Require().NotNil(resp.Entry)
	suite.Equal("e1", resp.Entry.EntryID)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateLedgerEntry_UnknownStatus() {
	w := doRequest(suite.router, http.MethodPost, suite.url(""), suite.userID, map[string]any{
		"status":     "PROMOTED",
		"occurredAt": time.Now().Format(time.RFC3339),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateLedgerEntry")
}

func (suite *LedgerHandlerTestSuite) TestDeleteLedgerEntry_ReportsRepair() {
	suite.mockLedger.On("DeleteLedgerEntry", mock.Anything, suite.userID, suite.application, "e1").
		Return(&domain.LedgerMutationResult{ApplicationStatus: domain.StatusDraft, Repaired: true}, nil).Once()

	w := doRequest(suite.router, http.MethodDelete, suite.url("/e1"), suite.userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerMutationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Repaired)
	suite.Equal(domain.StatusDraft, resp.ApplicationStatus)
}

func (suite *LedgerHandlerTestSuite) TestErrorMapping() {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", apperrors.NewNotFoundError("application a1"), http.StatusNotFound, "not found"},
		{"validation", apperrors.NewValidationError("occurredAt is required"), http.StatusBadRequest, "occurredAt is required"},
		{"conflict", apperrors.NewConflictError("serialization failure", errors.New("SQLSTATE 40001")), http.StatusConflict, "conflict, retry"},
		{"internal", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Failed to update ledger entry"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockLedger.On("UpdateLedgerEntry", mock.Anything, suite.userID, suite.application, "e1", mock.Anything).
				Return(nil, tt.err).Once()

			w := doRequest(suite.router, http.MethodPatch, suite.url("/e1"), suite.userID, map[string]any{"notes": "x"})

			suite.Equal(tt.wantCode, w.Code)
			var body map[string]string
			suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
			suite.Equal(tt.wantBody, body["error"])
			suite.NotContains(w.Body.String(), "SQLSTATE")
		})
	}
}

func (suite *LedgerHandlerTestSuite) TestRequiresToken() {
	w := doRequest(suite.router, http.MethodGet, suite.url(""), "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListLedgerEntries")
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

// --- Full stack over the in-memory store ---

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	jobs   *queue.InProcess
	userID string
}

func (suite *APITestSuite) SetupTest() {
	store := memory.NewStore()
	suite.userID = uuid.NewString()
	store.PutUser(domain.User{UserID: suite.userID, Email: "ada@example.com", Name: "Ada"})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.jobs = queue.NewInProcess(func(context.Context, domain.ReminderJob) error { return nil }, logger)
	container := services.NewServiceContainer(*memory.NewRepositoryProvider(store), services.Dependencies{
		Scheduler: suite.jobs,
		Notifier:  noopNotifier{},
		Policy:    services.DemoUserPolicy{},
	})
	suite.router = newRouter(container)
}

func (suite *APITestSuite) TearDownTest() {
	suite.jobs.Close()
}

type noopNotifier struct{}

func (noopNotifier) NotifyReminder(context.Context, domain.ReminderNotice) error { return nil }

func (suite *APITestSuite) createApplication(title, company string) dto.ApplicationResponse {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/applications", suite.userID, map[string]any{
		"jobTitle":    title,
		"companyName": company,
		"status":      "APPLIED",
		"statusDate":  time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339),
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var app dto.ApplicationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &app))
	return app
}

func (suite *APITestSuite) TestApplicationLifecycle() {
	app := suite.createApplication("Backend Engineer", "Acme")
	suite.Equal(domain.StatusApplied, app.Status)
	suite.Equal("active", app.Phase)

	interviewAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	w := doRequest(suite.router, http.MethodPost, "/api/v1/applications/"+app.ApplicationID+"/interviews", suite.userID, map[string]any{
		"scheduledAt": interviewAt.Format(time.RFC3339),
		"notes":       "onsite",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var iv dto.InterviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &iv))
	suite.Equal(domain.InterviewUpcoming, iv.Status)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/applications/"+app.ApplicationID, suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var detail dto.ApplicationDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal(domain.StatusInterview, detail.Status)
	suite.Len(detail.LedgerEntries, 2)
	suite.Len(detail.Interviews, 1)
	suite.Empty(detail.Reminders)

	w = doRequest(suite.router, http.MethodDelete, "/api/v1/interviews/"+iv.InterviewID, suite.userID, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/applications/"+app.ApplicationID+"/ledger", suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var entries []dto.LedgerEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	suite.Require().Len(entries, 1)
	suite.Equal(domain.StatusApplied, entries[0].Status)
}

func (suite *APITestSuite) TestReminderIsScheduled() {
	app := suite.createApplication("Data Engineer", "Globex")

	w := doRequest(suite.router, http.MethodPost, "/api/v1/applications/"+app.ApplicationID+"/reminders", suite.userID, map[string]any{
		"alarmDate": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		"message":   "Follow up",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var reminder dto.ReminderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reminder))
	suite.True(reminder.Scheduled)
	suite.Empty(reminder.Warning)
	suite.Equal(1, suite.jobs.Pending())

	w = doRequest(suite.router, http.MethodPatch, "/api/v1/reminders/"+reminder.ReminderID, suite.userID, map[string]any{"status": "STOPPED"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(0, suite.jobs.Pending())
}

func (suite *APITestSuite) TestOtherUsersDataIsNotFound() {
	app := suite.createApplication("SRE", "Initech")

	w := doRequest(suite.router, http.MethodGet, "/api/v1/applications/"+app.ApplicationID, uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestListApplicationsValidatesQuery() {
	suite.createApplication("SRE", "Initech")

	w := doRequest(suite.router, http.MethodGet, "/api/v1/applications?sort=RANDOM", suite.userID, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/applications?sort=ALPHABETICAL&status=APPLIED&search=init", suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var list dto.ListApplicationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Equal(1, list.Total)
}

func (suite *APITestSuite) TestCharts() {
	suite.createApplication("SRE", "Initech")

	w := doRequest(suite.router, http.MethodGet, "/api/v1/charts/summary?timeFrame=PAST_MONTH", suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var summary domain.StatusSummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.Equal(1, summary.Total)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/charts/transitions", suite.userID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/charts/periods?timeFrame=FOREVER", suite.userID, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestListUserInterviews() {
	app := suite.createApplication("Backend Engineer", "Acme")
	for _, at := range []time.Time{
		time.Now().Add(-24 * time.Hour),
		time.Now().Add(96 * time.Hour),
		time.Now().Add(48 * time.Hour),
	} {
		w := doRequest(suite.router, http.MethodPost, "/api/v1/applications/"+app.ApplicationID+"/interviews", suite.userID, map[string]any{
			"scheduledAt": at.UTC().Truncate(time.Second).Format(time.RFC3339),
		})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := doRequest(suite.router, http.MethodGet, "/api/v1/interviews?sortBy=OLDEST&statusFilter=UPCOMING", suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var interviews []dto.InterviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &interviews))
	suite.Require().Len(interviews, 2)
	suite.True(interviews[0].ScheduledAt.Before(interviews[1].ScheduledAt))
	for _, iv := range interviews {
		suite.Equal(domain.InterviewUpcoming, iv.Status)
	}

	w = doRequest(suite.router, http.MethodGet, "/api/v1/interviews?statusFilter=LATER", suite.userID, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	w = doRequest(suite.router, http.MethodGet, "/api/v1/interviews?sortBy=RANDOM", suite.userID, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/interviews", uuid.NewString(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq("[]", w.Body.String())
}

func (suite *APITestSuite) TestListUserReminders() {
	app := suite.createApplication("Data Engineer", "Globex")
	w := doRequest(suite.router, http.MethodPost, "/api/v1/applications/"+app.ApplicationID+"/reminders", suite.userID, map[string]any{
		"alarmDate": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		"message":   "Follow up",
		"status":    "STOPPED",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(suite.router, http.MethodGet, "/api/v1/reminders?statusFilter=STOPPED&sortBy=NEWEST", suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var reminders []dto.ReminderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reminders))
	suite.Len(reminders, 1)

	w = doRequest(suite.router, http.MethodGet, "/api/v1/reminders?statusFilter=ACTIVE", suite.userID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq("[]", w.Body.String())

	w = doRequest(suite.router, http.MethodGet, "/api/v1/reminders?statusFilter=UPCOMING", suite.userID, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
