package pgsql

import (
	"context"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/SscSPs/job_tracker_app/internal/models"
	"github.com/SscSPs/job_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const ledgerColumns = `entry_id, application_id, status, occurred_at, notes, sequence, created_at`

func scanLedgerEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var m models.LedgerEntry
	if err := row.Scan(&m.EntryID, &m.ApplicationID, &m.Status, &m.OccurredAt, &m.Notes, &m.Sequence, &m.CreatedAt); err != nil {
		return domain.LedgerEntry{}, err
	}
	return mapping.ToDomainLedgerEntry(m), nil
}

// listLedgerEntries returns the application's entries in insertion order.
func listLedgerEntries(ctx context.Context, q dbtx, applicationID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE application_id = $1 ORDER BY sequence;`
	rows, err := q.Query(ctx, query, applicationID)
	if err != nil {
		return nil, mapPgError(err, "failed to list ledger entries")
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan ledger entry")
		}
		entries = append(entries, e)
	}
	return entries, mapPgError(rows.Err(), "failed to iterate ledger entries")
}

// listLedgersByApplication loads the ledgers of many applications in one query.
func listLedgersByApplication(ctx context.Context, q dbtx, applicationIDs []string) (map[string][]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE application_id = ANY($1) ORDER BY sequence;`
	rows, err := q.Query(ctx, query, applicationIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to list ledger entries")
	}
	defer rows.Close()

	out := make(map[string][]domain.LedgerEntry, len(applicationIDs))
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan ledger entry")
		}
		out[e.ApplicationID] = append(out[e.ApplicationID], e)
	}
	return out, mapPgError(rows.Err(), "failed to iterate ledger entries")
}

func (t *pgxLifecycleTx) ListLedgerEntries(ctx context.Context, applicationID string) ([]domain.LedgerEntry, error) {
	return listLedgerEntries(ctx, t.q, applicationID)
}

func (t *pgxLifecycleTx) FindLedgerEntryByID(ctx context.Context, applicationID, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE entry_id = $1 AND application_id = $2;`
	e, err := scanLedgerEntry(t.q.QueryRow(ctx, query, entryID, applicationID))
	if err != nil {
		return nil, mapPgError(err, "ledger entry not found")
	}
	return &e, nil
}

func (t *pgxLifecycleTx) SaveLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(*entry)
	query := `
		INSERT INTO ledger_entries (entry_id, application_id, status, occurred_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING sequence;
	`
	err := t.q.QueryRow(ctx, query, m.EntryID, m.ApplicationID, m.Status, m.OccurredAt, m.Notes, m.CreatedAt).Scan(&entry.Sequence)
	return mapPgError(err, "failed to insert ledger entry "+m.EntryID)
}

func (t *pgxLifecycleTx) UpdateLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `UPDATE ledger_entries SET status = $3, occurred_at = $4, notes = $5 WHERE entry_id = $1 AND application_id = $2;`
	tag, err := t.q.Exec(ctx, query, m.EntryID, m.ApplicationID, m.Status, m.OccurredAt, m.Notes)
	if err != nil {
		return mapPgError(err, "failed to update ledger entry "+m.EntryID)
	}
	return expectOne(tag, "ledger entry")
}

func (t *pgxLifecycleTx) DeleteLedgerEntry(ctx context.Context, applicationID, entryID string) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1 AND application_id = $2;`, entryID, applicationID)
	if err != nil {
		return mapPgError(err, "failed to delete ledger entry "+entryID)
	}
	return expectOne(tag, "ledger entry")
}
