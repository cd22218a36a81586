package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
)

// ErrNoRecipient is returned when the reminder's owner has no email address.
var ErrNoRecipient = errors.New("notify: reminder owner has no email address")

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails reminders through an SMTP relay.
type SMTPNotifier struct {
	cfg  SMTPConfig
	auth smtp.Auth
	send sendFunc
}

var _ portssvc.Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier creates a notifier for cfg. From defaults to Username.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPNotifier{cfg: cfg, auth: auth, send: smtp.SendMail}
}

// NotifyReminder mails notice to the reminder's owner.
func (n *SMTPNotifier) NotifyReminder(ctx context.Context, notice domain.ReminderNotice) error {
	if notice.UserEmail == "" {
		return ErrNoRecipient
	}
	msg, err := buildMessage(n.cfg.From, notice.UserEmail, notice)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	if err := n.send(addr, n.auth, n.cfg.From, []string{notice.UserEmail}, msg); err != nil {
		return fmt.Errorf("failed to send reminder mail: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Reminder mail sent",
		slog.String("reminder_id", notice.Reminder.ReminderID),
		slog.String("relay", addr))
	return nil
}
