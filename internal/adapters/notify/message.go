// Package notify delivers fired reminders to their owners.
package notify

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
)

var bodyTemplate = template.Must(template.New("reminder").Parse(`Hi {{if .UserName}}{{.UserName}}{{else}}there{{end}},

This is your reminder for {{.JobTitle}}{{if .CompanyName}} at {{.CompanyName}}{{end}}.
{{if .Reminder.Message}}
{{.Reminder.Message}}
{{end}}
Alarm set for {{.Reminder.AlarmDate.UTC.Format "Mon, 02 Jan 2006 15:04 MST"}}.
`))

// subject is the mail subject line for notice.
func subject(notice domain.ReminderNotice) string {
	if notice.CompanyName == "" {
		return fmt.Sprintf("Reminder: %s", notice.JobTitle)
	}
	return fmt.Sprintf("Reminder: %s at %s", notice.JobTitle, notice.CompanyName)
}

// body renders the plain-text mail body for notice.
func body(notice domain.ReminderNotice) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, notice); err != nil {
		return "", fmt.Errorf("failed to render reminder body: %w", err)
	}
	return buf.String(), nil
}

// buildMessage assembles an RFC 5322 message with CRLF line endings.
func buildMessage(from, to string, notice domain.ReminderNotice) ([]byte, error) {
	text, err := body(notice)
	if err != nil {
		return nil, err
	}
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + sanitizeHeader(subject(notice)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n")
	return []byte(msg), nil
}

// sanitizeHeader keeps user-controlled text on one header line.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
