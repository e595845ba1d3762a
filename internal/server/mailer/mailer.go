// Package mailer delivers rendered messages through one of the configured
// providers.
package mailer

import (
	"context"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/server/config"
)

// Message is a single-recipient email with text and HTML alternatives.
type Message struct {
	To      string
	From    string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message. A rejected recipient or transport failure is
// reported as an error wrapping common.ErrDelivery. No retries are made.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// NewSender builds the Sender selected by cfg.MailProvider. Missing
// credentials are reported as common.ErrConfig so the process fails at start.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP, "":
		if cfg.SMTPHost == "" || cfg.SMTPPassword == "" {
			return nil, fmt.Errorf("%w: smtp host and password are required", common.ErrConfig)
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword), nil
	case config.MailProviderMailgun:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, fmt.Errorf("%w: mailgun domain and api key are required", common.ErrConfig)
		}
		return NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey), nil
	case config.MailProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("%w: sendgrid api key is required", common.ErrConfig)
		}
		return NewSendGridSender(cfg.SendGridAPIKey), nil
	default:
		return nil, fmt.Errorf("%w: unknown mail provider %q", common.ErrConfig, cfg.MailProvider)
	}
}
