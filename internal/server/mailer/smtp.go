package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/wneessen/go-mail"
)

const smtpTimeout = 30 * time.Second

// SMTPSender sends over implicit TLS with PLAIN auth, which is what the
// Resend SMTP relay expects on port 465.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	opts     []mail.Option
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		opts: []mail.Option{
			mail.WithSSL(),
			mail.WithTimeout(smtpTimeout),
		},
	}
}

func newMsg(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	}
	return msg, nil
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg, err := newMsg(m)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrDelivery, err)
	}

	opts := append([]mail.Option{
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
	}, s.opts...)

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("%w: smtp client: %w", common.ErrDelivery, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		var sendErr *mail.SendError
		if errors.As(err, &sendErr) && sendErr.Reason == mail.ErrSMTPRcptTo {
			return fmt.Errorf("%w: recipient %s rejected: %w", common.ErrDelivery, m.To, err)
		}
		return fmt.Errorf("%w: %w", common.ErrDelivery, err)
	}
	return nil
}
