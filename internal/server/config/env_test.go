package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://prod/dishdash")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("AUTH_URL", "https://dishdash.app")
	t.Setenv("ADMIN_EMAIL", "Owner@DishDash.app")
	t.Setenv("RESEND_API_KEY", "re_live")
	t.Setenv("RESEND_FROM_EMAIL", "hello@dishdash.app")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SECURE_COOKIES", "true")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, "postgres://prod/dishdash", c.DatabaseDSN)
	assert.Equal(t, "s3cret", c.SecretKey)
	assert.Equal(t, "https://dishdash.app", c.BaseURL)
	assert.Equal(t, "Owner@DishDash.app", c.AdminEmail)
	assert.Equal(t, "re_live", c.SMTPPassword)
	assert.Equal(t, "hello@dishdash.app", c.MailFrom)
	assert.Equal(t, 587, c.SMTPPort)
	assert.True(t, c.SecureCookies)
	assert.Equal(t, "resend", c.SMTPUsername, "unset variables keep their value")
}

func TestParseEnv_IgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("SECURE_COOKIES", "maybe")

	c := &Config{SMTPPort: 465, SecureCookies: false}
	parseEnv(c)

	assert.Equal(t, 465, c.SMTPPort)
	assert.False(t, c.SecureCookies)
}
