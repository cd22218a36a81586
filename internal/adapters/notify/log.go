package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
)

// LogNotifier writes reminders to the log instead of mailing them. It is used
// when no mail relay is configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) NotifyReminder(ctx context.Context, notice domain.ReminderNotice) error {
	text, err := body(notice)
	if err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Reminder due",
		slog.String("reminder_id", notice.Reminder.ReminderID),
		slog.String("to", notice.UserEmail),
		slog.String("subject", subject(notice)),
		slog.String("body", text))
	return nil
}
