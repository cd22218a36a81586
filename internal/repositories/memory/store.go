// Package memory is an in-process storage adapter. It backs the service layer
// when no database is configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/job_tracker_app/internal/core/ports/repositories"
)

// state is one consistent view of every table. Lifecycle transactions work
// on a clone and swap it in on commit.
type state struct {
	users        map[string]domain.User
	companies    map[string]domain.Company
	applications map[string]domain.Application
	entries      map[string]domain.LedgerEntry
	interviews   map[string]domain.Interview
	reminders    map[string]domain.Reminder
	seq          int64

	faults *faults
}

func newState(f *faults) *state {
	return &state{
		users:        make(map[string]domain.User),
		companies:    make(map[string]domain.Company),
		applications: make(map[string]domain.Application),
		entries:      make(map[string]domain.LedgerEntry),
		interviews:   make(map[string]domain.Interview),
		reminders:    make(map[string]domain.Reminder),
		faults:       f,
	}
}

func (s *state) clone() *state {
	c := newState(s.faults)
	c.seq = s.seq
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.applications {
		v.FileURLs = append([]string(nil), v.FileURLs...)
		c.applications[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.interviews {
		v.LedgerEntryID = copyString(v.LedgerEntryID)
		c.interviews[k] = v
	}
	for k, v := range s.reminders {
		v.JobID = copyString(v.JobID)
		c.reminders[k] = v
	}
	return c
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// faults holds injected failures keyed by operation name.
type faults struct {
	mu  sync.Mutex
	ops map[string]error
}

func (f *faults) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ops[op]
}

// Store is a thread-safe in-memory implementation of every repository port.
// A single mutex serializes lifecycle transactions, which covers the
// per-application locking the ports require.
type Store struct {
	mu     sync.Mutex
	st     *state
	faults *faults
}

// NewStore creates an empty store.
func NewStore() *Store {
	f := &faults{ops: make(map[string]error)}
	return &Store{st: newState(f), faults: f}
}

// FailOn makes every later call of op (a repository method name, e.g.
// "UpdateApplicationStatus") return err. A nil err clears the fault.
func (m *Store) FailOn(op string, err error) {
	m.faults.mu.Lock()
	defer m.faults.mu.Unlock()
	if err == nil {
		delete(m.faults.ops, op)
		return
	}
	m.faults.ops[op] = err
}

// PutUser inserts or replaces a user. Users are provisioned by the identity
// provider, so there is no service-level writer for them.
func (m *Store) PutUser(user domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.users[user.UserID] = user
}

// memTx is the LifecycleTx view of a working copy of the state. The store
// mutex is held for its whole life.
type memTx struct {
	*state
}

var _ portsrepo.LifecycleTx = memTx{}

// WithinLifecycleTx runs fn against a copy of the state and publishes the
// copy only when fn succeeds.
func (m *Store) WithinLifecycleTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LifecycleTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.st.clone()
	if err := fn(ctx, memTx{state: work}); err != nil {
		return err
	}
	m.st = work
	return nil
}

// locked runs fn under the store mutex.
func (m *Store) locked(fn func(s *state)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.st)
}

// NewRepositoryProvider wires one store into every repository slot.
func NewRepositoryProvider(store *Store) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ApplicationRepository: store,
		InterviewRepository:   store,
		ReminderRepository:    store,
		CompanyRepository:     store,
		UserRepository:        store,
	}
}
