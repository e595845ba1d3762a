package config

import (
	"os"
	"strconv"
	"strings"
)

// parseEnv overlays values from the process environment. Variable names
// follow the deployment conventions of the hosting platform:
//
//	DATABASE_URL, AUTH_SECRET, AUTH_URL, ADMIN_EMAIL, MAIL_PROVIDER,
//	RESEND_API_KEY, RESEND_FROM_EMAIL, SMTP_HOST, SMTP_PORT, SMTP_USER,
//	MAILGUN_DOMAIN, MAILGUN_API_KEY, SENDGRID_API_KEY, SECURE_COOKIES, LOG_LEVEL
//
// Unset variables leave the current value untouched; malformed numbers
// and booleans are ignored.
func parseEnv(config *Config) {
	lookup := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	lookup(&config.DatabaseDSN, "DATABASE_URL")
	lookup(&config.SecretKey, "AUTH_SECRET")
	lookup(&config.BaseURL, "AUTH_URL")
	lookup(&config.AdminEmail, "ADMIN_EMAIL")
	lookup(&config.MailProvider, "MAIL_PROVIDER")
	lookup(&config.SMTPPassword, "RESEND_API_KEY")
	lookup(&config.MailFrom, "RESEND_FROM_EMAIL")
	lookup(&config.SMTPHost, "SMTP_HOST")
	lookup(&config.SMTPUsername, "SMTP_USER")
	lookup(&config.MailgunDomain, "MAILGUN_DOMAIN")
	lookup(&config.MailgunAPIKey, "MAILGUN_API_KEY")
	lookup(&config.SendGridAPIKey, "SENDGRID_API_KEY")
	lookup(&config.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}
	if v, ok := os.LookupEnv("SECURE_COOKIES"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.SecureCookies = b
		}
	}
}
