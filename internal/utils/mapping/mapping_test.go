package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNullStringRoundTrip(t *testing.T) {
	assert.False(t, ToNullString(nil).Valid)
	assert.Nil(t, FromNullString(ToNullString(nil)))

	id := "entry-1"
	ns := ToNullString(&id)
	assert.True(t, ns.Valid)
	assert.Equal(t, "entry-1", *FromNullString(ns))
}

func TestToModelApplicationNeverStoresNilFileURLs(t *testing.T) {
	m := ToModelApplication(domain.Application{ApplicationID: "a1"})
	assert.NotNil(t, m.FileURLs)
	assert.Empty(t, m.FileURLs)
}

func TestToDomainLedgerEntryNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, loc)
	e := ToDomainLedgerEntry(ToModelLedgerEntry(domain.LedgerEntry{EntryID: "e1", OccurredAt: at, Sequence: 7}))
	assert.Equal(t, time.UTC, e.OccurredAt.Location())
	assert.True(t, e.OccurredAt.Equal(at))
	assert.Equal(t, int64(7), e.Sequence)
}
