package service

import (
	"context"
	"fmt"
	"html"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// WelcomeMessage is sent once a user finishes onboarding.
type WelcomeMessage struct {
	UserID string
	Email  string
	Name   string
}

// Notifier delivers user-facing messages. Delivery is best effort; callers
// log failures and carry on.
type Notifier interface {
	SendWelcome(ctx context.Context, msg WelcomeMessage) error
}

// NewNotifier selects the resend notifier when an API key is configured and
// falls back to logging otherwise.
func NewNotifier(apiKey, from string, log *logrus.Logger) Notifier {
	if apiKey == "" {
		log.Warn("RESEND_API_KEY not set, welcome messages will only be logged")
		return NewLogNotifier(log)
	}
	return NewResendNotifier(resend.NewClient(apiKey), from, log)
}

type resendNotifier struct {
	client *resend.Client
	from   string
	log    *logrus.Logger
}

func NewResendNotifier(client *resend.Client, from string, log *logrus.Logger) Notifier {
	return &resendNotifier{
		client: client,
		from:   from,
		log:    log,
	}
}

func (n *resendNotifier) SendWelcome(ctx context.Context, msg WelcomeMessage) error {
	if msg.Email == "" {
		return fmt.Errorf("welcome message for %s has no recipient", msg.UserID)
	}

	name := msg.Name
	if name == "" {
		name = "there"
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{msg.Email},
		Subject: "Welcome to NueraCare",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Hi %s, you're all set!</h2>
				<p>Your NueraCare profile is ready. Upload your first medical report any time to get a plain-language summary.</p>
			</div>
		`, html.EscapeString(name)),
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.NewString(),
		},
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	n.log.WithFields(logrus.Fields{
		"user_id":  msg.UserID,
		"email_id": sent.Id,
	}).Info("Welcome email sent")
	return nil
}

type logNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) SendWelcome(ctx context.Context, msg WelcomeMessage) error {
	n.log.WithFields(logrus.Fields{
		"user_id": msg.UserID,
		"email":   msg.Email,
	}).Info("[Dev Mode] Welcome message")
	return nil
}
