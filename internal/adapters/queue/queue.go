// Package queue implements the delayed job facility reminders are scheduled
// on. Jobs carry a domain.ReminderJob and are handed to a FireHandler when due.
package queue

import (
	"context"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

// FireHandler consumes a due job. A returned error makes the facility retry
// the job with the same JobID until MaxAttempts is reached.
type FireHandler func(ctx context.Context, job domain.ReminderJob) error

// MaxAttempts bounds how often a failing job is handed to the FireHandler.
const MaxAttempts = 5

// retryDelay is the back-off before attempt number attempt (1-based) runs again.
func retryDelay(attempt int) time.Duration {
	d := time.Second << uint(attempt)
	if d > time.Minute {
		return time.Minute
	}
	return d
}
