package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleCounters(t *testing.T) {
	before := testutil.ToFloat64(ledgerMutations.WithLabelValues("delete"))
	RecordLedgerMutation("delete")
	RecordLedgerMutation("delete")
	assert.Equal(t, before+2, testutil.ToFloat64(ledgerMutations.WithLabelValues("delete")))

	repairs := testutil.ToFloat64(draftRepairs)
	RecordDraftRepair()
	assert.Equal(t, repairs+1, testutil.ToFloat64(draftRepairs))

	fired := testutil.ToFloat64(remindersFired.WithLabelValues("sent"))
	RecordReminderFired("sent")
	assert.Equal(t, fired+1, testutil.ToFloat64(remindersFired.WithLabelValues("sent")))
}

func TestHTTPRequestStarted(t *testing.T) {
	done := HTTPRequestStarted(http.MethodGet, "/api/v1/applications")
	assert.Equal(t, float64(1), testutil.ToFloat64(httpInFlight))
	done(http.StatusOK)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/v1/applications", "200")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordStatusUpdate()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "jta_lifecycle_status_updates_total"))
}
