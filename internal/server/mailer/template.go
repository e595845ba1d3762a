package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

const magicLinkSubject = "Sign in to DishDash"

// Both bodies use text/template so the link is emitted byte-for-byte.
// The URL is built from query-escaped parts and contains no quotes.
var magicLinkText = template.Must(template.New("text").Parse(`Sign in to DishDash

Click the link below to sign in:
{{.URL}}

If you didn't request this email, you can safely ignore it.

This link expires in {{.ExpiresIn}}.`))

var magicLinkHTML = template.Must(template.New("html").Parse(`<body style="background: #f9fafb; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
  <table width="100%" border="0" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table border="0" cellspacing="0" cellpadding="0" style="max-width: 600px; background: white; border-radius: 8px;">
          <tr>
            <td style="padding: 40px 40px 32px;">
              <h1 style="margin: 0 0 24px; font-size: 24px; font-weight: 600; color: #111827;">Sign in to DishDash</h1>
              <p style="margin: 0 0 24px; font-size: 16px; color: #4b5563;">Click the button below to sign in to your account:</p>
              <p style="text-align: center;">
                <a href="{{.URL}}" target="_blank" style="display: inline-block; padding: 12px 32px; background-color: #f97316; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: 600;">Sign in to DishDash</a>
              </p>
              <p style="margin: 24px 0 0; font-size: 14px; color: #6b7280;">Or copy and paste this URL into your browser:</p>
              <p style="margin: 8px 0 0; font-size: 14px; word-break: break-all; color: #3b82f6;">{{.URL}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 40px; border-top: 1px solid #e5e7eb; font-size: 13px; color: #9ca3af;">
              If you didn't request this email, you can safely ignore it. This link expires in {{.ExpiresIn}}.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>`))

type magicLinkData struct {
	URL       string
	ExpiresIn string
}

// MagicLink renders the sign-in message for to. The same url appears in the
// text and HTML bodies.
func MagicLink(to, from, url string, maxAge time.Duration) (Message, error) {
	data := magicLinkData{URL: url, ExpiresIn: humanizeDuration(maxAge)}

	var text, html bytes.Buffer
	if err := magicLinkText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	if err := magicLinkHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{
		To:      to,
		From:    from,
		Subject: magicLinkSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
