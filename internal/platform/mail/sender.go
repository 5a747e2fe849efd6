// Package mail sends transactional email through SendGrid.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rchoud/task-manager-api/internal/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGridSender implements Sender over the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger *slog.Logger
}

// Ensure SendGridSender implements Sender.
var _ Sender = (*SendGridSender)(nil)

// NewSendGridSender creates a SendGridSender from the mail configuration.
func NewSendGridSender(cfg config.MailConfig, logger *slog.Logger) *SendGridSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger.With(slog.String("component", "sendgrid_sender")),
	}
}

// Send implements the Sender interface.
func (s *SendGridSender) Send(ctx context.Context, to, subject, body string) error {
	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send rejected: status %d", resp.StatusCode)
	}

	s.logger.Debug("email sent", "to", to, "subject", subject, "status", resp.StatusCode)
	return nil
}
