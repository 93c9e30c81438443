package mail

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog"
)

const sendTimeout = 10 * time.Second

// Mailgun delivers plain-text mail through the Mailgun HTTP API.
type Mailgun struct {
	client *mg.MailgunImpl
	sender string
	logger zerolog.Logger
}

func NewMailgun(domain, apiKey, sender string, logger zerolog.Logger) *Mailgun {
	return &Mailgun{
		client: mg.NewMailgun(domain, apiKey),
		sender: sender,
		logger: logger,
	}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, body string) error {
	msg := m.client.NewMessage(m.sender, subject, body, to)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := m.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	m.logger.Debug().Str("message_id", id).Str("to", to).Msg("mail sent")
	return nil
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no Mailgun domain is configured.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("mail not sent: no transport configured")
	return nil
}
