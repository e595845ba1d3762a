package mailer

import (
	"context"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/mailgun/mailgun-go/v4"
)

type MailgunSender struct {
	mg *mailgun.MailgunImpl
}

func NewMailgunSender(domain, apiKey string) *MailgunSender {
	return &MailgunSender{mg: mailgun.NewMailgun(domain, apiKey)}
}

func (s *MailgunSender) Send(ctx context.Context, m Message) error {
	message := s.mg.NewMessage(m.From, m.Subject, m.Text)
	if err := message.AddRecipient(m.To); err != nil {
		return fmt.Errorf("%w: %w", common.ErrDelivery, err)
	}
	if m.HTML != "" {
		message.SetHtml(m.HTML)
	}

	if _, _, err := s.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("%w: mailgun: %w", common.ErrDelivery, err)
	}
	return nil
}
