package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/google/uuid"
)

// InProcess keeps pending jobs as timers in the current process. Pending jobs
// are lost on restart; it serves local development and single-node setups.
type InProcess struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	closed  bool
	handler FireHandler
	logger  *slog.Logger
	backoff func(attempt int) time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ portssvc.JobScheduler = (*InProcess)(nil)

// NewInProcess creates a timer-backed scheduler delivering due jobs to handler.
func NewInProcess(handler FireHandler, logger *slog.Logger) *InProcess {
	ctx, cancel := context.WithCancel(context.Background())
	return &InProcess{
		timers:  make(map[string]*time.Timer),
		handler: handler,
		logger:  logger.With(slog.String("component", "inproc_queue")),
		backoff: retryDelay,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Enqueue schedules a job for reminderID after delay.
func (q *InProcess) Enqueue(_ context.Context, reminderID string, delay time.Duration) (string, error) {
	job := domain.ReminderJob{JobID: uuid.NewString(), ReminderID: reminderID}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return "", ErrClosed
	}
	q.arm(job, delay)
	return job.JobID, nil
}

// arm starts the timer for job. q.mu must be held; the timer callback takes
// it too, so a zero delay cannot fire before the job is registered.
func (q *InProcess) arm(job domain.ReminderJob, delay time.Duration) {
	q.timers[job.JobID] = time.AfterFunc(delay, func() { q.fire(job) })
}

// Cancel stops a pending job. Unknown ids are ignored.
func (q *InProcess) Cancel(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[jobID]; ok {
		t.Stop()
		delete(q.timers, jobID)
	}
	return nil
}

// Pending reports how many jobs are waiting to fire.
func (q *InProcess) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

func (q *InProcess) fire(job domain.ReminderJob) {
	q.mu.Lock()
	if _, ok := q.timers[job.JobID]; !ok || q.closed {
		q.mu.Unlock()
		return
	}
	delete(q.timers, job.JobID)
	q.wg.Add(1)
	q.mu.Unlock()
	defer q.wg.Done()

	logger := q.logger.With(slog.String("job_id", job.JobID), slog.String("reminder_id", job.ReminderID))
	err := q.handler(middleware.WithLogger(q.ctx, logger), job)
	if err == nil {
		return
	}

	job.Attempt++
	if job.Attempt >= MaxAttempts {
		logger.Error("Reminder job failed, giving up", slog.String("error", err.Error()), slog.Int("attempts", job.Attempt))
		return
	}
	delay := q.backoff(job.Attempt)
	logger.Warn("Reminder job failed, retrying", slog.String("error", err.Error()), slog.Duration("retry_in", delay))

	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.arm(job, delay)
	}
}

// Close stops every pending timer and waits for running handlers.
func (q *InProcess) Close() {
	q.mu.Lock()
	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
}
