package repositories

import (
	"context"
)

// LifecycleUnitOfWork runs lifecycle mutations atomically. Every write made
// through the LifecycleTx handed to fn commits together or not at all.
// Implementations lock the application row on LockApplication, so concurrent
// mutations of one application are serialized.
type LifecycleUnitOfWork interface {
	WithinLifecycleTx(ctx context.Context, fn func(ctx context.Context, tx LifecycleTx) error) error
}

// LifecycleTx is the set of repositories available inside a lifecycle
// transaction.
type LifecycleTx interface {
	ApplicationTxWriter
	CompanyTxWriter
	LedgerReader
	LedgerWriter
	InterviewReader
	InterviewWriter
}
