package notify

import (
	"context"
	"errors"
	"fmt"

	"instructorhub/internal/onboarding"
	"instructorhub/pkg/types"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// UserEmails resolves a user id to an email address.
type UserEmails interface {
	User(ctx context.Context, userID string) (*types.User, error)
}

// Mailer delivers onboarding lifecycle emails over SMTP. Delivery is
// fire-and-forget: failures are logged and never surface to the workflow.
type Mailer struct {
	logger *logrus.Logger
	dialer *gomail.Dialer
	from   string
	users  UserEmails
}

func NewMailer(logger *logrus.Logger, host string, port int, username, password, from string, users UserEmails) *Mailer {
	return &Mailer{
		logger: logger,
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		users:  users,
	}
}

func (m *Mailer) Notify(ctx context.Context, event onboarding.Event, userID string, payload map[string]string) {
	go func() {
		if err := m.send(context.WithoutCancel(ctx), event, userID, payload); err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"event":   event,
				"user_id": userID,
			}).Error("failed to deliver notification email")
		}
	}()
}

func (m *Mailer) send(ctx context.Context, event onboarding.Event, userID string, payload map[string]string) error {
	user, err := m.users.User(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}
	if user.Email == nil || *user.Email == "" {
		return errors.New("user has no email address")
	}

	subject, body := composeMessage(event, payload)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", *user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %s email: %w", event, err)
	}
	return nil
}

func composeMessage(event onboarding.Event, payload map[string]string) (string, string) {
	switch event {
	case onboarding.EventSubmitted:
		return "Your instructor application was received",
			"Your application and documents have been submitted for review. We will notify you once a decision is made."
	case onboarding.EventApproved:
		return "Your instructor application was approved",
			"Congratulations! You now have instructor access on your account."
	case onboarding.EventRejected:
		body := "Unfortunately your instructor application was not approved."
		if reason := payload["reason"]; reason != "" {
			body += "\n\nReason: " + reason
		}
		if retryAfter := payload["canRetryAfter"]; retryAfter != "" {
			body += "\n\nYou may apply again after " + retryAfter + "."
		}
		return "Your instructor application was reviewed", body
	}
	return "Instructor onboarding update", "There is an update on your instructor application."
}

// Nop discards notifications; used when SMTP is not configured.
type Nop struct{}

func (Nop) Notify(context.Context, onboarding.Event, string, map[string]string) {}
