package config

import (
	"encoding/json"
	"os"

	"github.com/dishdash/dishdash/internal/flagx"
	"github.com/dishdash/dishdash/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration, so "720h" and integer nanoseconds are both accepted.
// Only fields present in the file override the current values.
type JsonConfig struct {
	ListenAddr              *string         `json:"listen_addr"`
	BaseURL                 *string         `json:"base_url"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	AdminEmail              *string         `json:"admin_email"`
	SessionMaxAge           *timex.Duration `json:"session_max_age"`
	VerificationTokenMaxAge *timex.Duration `json:"verification_token_max_age"`
	SecureCookies           *bool           `json:"secure_cookies"`
	CleanupInterval         *timex.Duration `json:"cleanup_interval"`
	LogLevel                *string         `json:"log_level"`
	MailProvider            *string         `json:"mail_provider"`
	MailFrom                *string         `json:"mail_from"`
	SMTPHost                *string         `json:"smtp_host"`
	SMTPPort                *int            `json:"smtp_port"`
	SMTPUsername            *string         `json:"smtp_username"`
	SMTPPassword            *string         `json:"smtp_password"`
	MailgunDomain           *string         `json:"mailgun_domain"`
	MailgunAPIKey           *string         `json:"mailgun_api_key"`
	SendGridAPIKey          *string         `json:"sendgrid_api_key"`
}

// parseJson loads the file named by -c/-config (if any) into config.
// A missing flag means nothing to load; an unreadable file or invalid JSON
// panics, since the server cannot start with a half-read configuration.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.BaseURL, c.BaseURL)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.MailProvider, c.MailProvider)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.SMTPHost, c.SMTPHost)
	setString(&config.SMTPUsername, c.SMTPUsername)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailgunDomain, c.MailgunDomain)
	setString(&config.MailgunAPIKey, c.MailgunAPIKey)
	setString(&config.SendGridAPIKey, c.SendGridAPIKey)

	if c.SessionMaxAge != nil {
		config.SessionMaxAge = c.SessionMaxAge.Duration
	}
	if c.VerificationTokenMaxAge != nil {
		config.VerificationTokenMaxAge = c.VerificationTokenMaxAge.Duration
	}
	if c.CleanupInterval != nil {
		config.CleanupInterval = c.CleanupInterval.Duration
	}
	if c.SecureCookies != nil {
		config.SecureCookies = *c.SecureCookies
	}
	if c.SMTPPort != nil {
		config.SMTPPort = *c.SMTPPort
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
