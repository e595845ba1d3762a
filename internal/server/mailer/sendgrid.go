package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

type SendGridSender struct {
	apiKey string
	host   string
}

func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey, host: sendGridHost}
}

func (s *SendGridSender) Send(ctx context.Context, m Message) error {
	from := mail.NewEmail("DishDash", m.From)
	to := mail.NewEmail("", m.To)
	message := mail.NewSingleEmail(from, m.Subject, to, m.Text, m.HTML)

	req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	req.Method = http.MethodPost
	client := &sendgrid.Client{Request: req}

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %w", common.ErrDelivery, err)
	}
	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: sendgrid: status code %d: %s", common.ErrDelivery, response.StatusCode, response.Body)
	}
	return nil
}
