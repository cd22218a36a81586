package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotice() domain.ReminderNotice {
	return domain.ReminderNotice{
		Reminder: domain.Reminder{
			ReminderID: "r1",
			AlarmDate:  time.Date(2024, 6, 20, 9, 30, 0, 0, time.UTC),
			Message:    "Follow up with the recruiter",
		},
		UserEmail:   "ada@example.com",
		UserName:    "Ada",
		JobTitle:    "Backend Engineer",
		CompanyName: "Acme",
	}
}

func TestSMTPNotifierSendsMessage(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "bot@example.com", Password: "secret"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, n.NotifyReminder(context.Background(), sampleNotice()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: Reminder: Backend Engineer at Acme\r\n")
	assert.Contains(t, msg, "Hi Ada,")
	assert.Contains(t, msg, "Follow up with the recruiter")
	assert.Contains(t, msg, "Thu, 20 Jun 2024 09:30 UTC")
	assert.NotContains(t, strings.ReplaceAll(msg, "\r\n", ""), "\n")
}

func TestSMTPNotifierRequiresRecipient(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587})
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	notice := sampleNotice()
	notice.UserEmail = ""

	assert.ErrorIs(t, n.NotifyReminder(context.Background(), notice), ErrNoRecipient)
}

func TestSMTPNotifierWrapsSendError(t *testing.T) {
	boom := errors.New("relay down")
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "noreply@example.com"})
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	assert.ErrorIs(t, n.NotifyReminder(context.Background(), sampleNotice()), boom)
}

func TestSubjectStripsLineBreaks(t *testing.T) {
	notice := sampleNotice()
	notice.JobTitle = "Engineer\r\nBcc: evil@example.com"

	msg, err := buildMessage("a@example.com", "b@example.com", notice)
	require.NoError(t, err)
	headers, _, found := strings.Cut(string(msg), "\r\n\r\n")
	require.True(t, found)
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestBodyWithoutOptionalFields(t *testing.T) {
	notice := sampleNotice()
	notice.UserName = ""
	notice.CompanyName = ""
	notice.Reminder.Message = ""

	text, err := body(notice)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Hi there,"))
	assert.Contains(t, text, "reminder for Backend Engineer.")
	assert.Equal(t, "Reminder: Backend Engineer", subject(notice))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.NotifyReminder(context.Background(), sampleNotice()))
}
