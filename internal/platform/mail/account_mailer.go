package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rchoud/task-manager-api/internal/events"
)

// AccountMailer turns account lifecycle events into welcome and farewell
// emails. It is registered with the event dispatcher, so sends run off the
// request path and their failures are only logged.
type AccountMailer struct {
	sender Sender
	logger *slog.Logger
}

// Ensure AccountMailer implements events.Handler.
var _ events.Handler = (*AccountMailer)(nil)

// NewAccountMailer creates an AccountMailer over the given sender.
func NewAccountMailer(sender Sender, logger *slog.Logger) *AccountMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountMailer{
		sender: sender,
		logger: logger.With(slog.String("component", "account_mailer")),
	}
}

// HandleAccountEvent implements events.Handler.
func (m *AccountMailer) HandleAccountEvent(ctx context.Context, event events.AccountEvent) error {
	var subject, body string
	switch event.Type {
	case events.AccountCreated:
		subject = "Thanks for joining in!"
		body = fmt.Sprintf("Welcome to the app, %s!", event.Name)
	case events.AccountDeleted:
		subject = "Sorry to see you go!"
		body = fmt.Sprintf("Goodbye, %s! I hope to see you back sometime soon.", event.Name)
	default:
		m.logger.Warn("ignoring unknown account event type", "event_type", string(event.Type))
		return nil
	}

	if err := m.sender.Send(ctx, event.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send %s email: %w", event.Type, err)
	}

	m.logger.Info("account email sent",
		"event_type", string(event.Type),
		"email", event.Email)
	return nil
}
