package config

import (
	"flag"
	"os"
	"time"

	"github.com/dishdash/dishdash/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-u string   public base URL used in magic links
//	-d string   PostgreSQL DSN
//	-s string   root secret key
//	-e string   admin email address
//	-m int      session lifetime, hours
//	-t int      magic link lifetime, hours
//	-p string   mail provider: smtp, mailgun or sendgrid
//	-f string   sender address
//	-l string   log level
//	-k          mark cookies Secure
//
// Mail credentials are read from the environment or the JSON file only.
// Lifetimes given in hours replace the current value only when passed.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-u", "-d", "-s", "-e", "-m", "-t", "-p", "-f", "-l"},
		"-k")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.BaseURL, "u", config.BaseURL, "public base URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.AdminEmail, "e", config.AdminEmail, "admin email")

	sessionMaxAge := fs.Int("m", int(config.SessionMaxAge.Hours()), "session lifetime (in hours)")
	tokenMaxAge := fs.Int("t", int(config.VerificationTokenMaxAge.Hours()), "magic link lifetime (in hours)")

	fs.StringVar(&config.MailProvider, "p", config.MailProvider, "mail provider")
	fs.StringVar(&config.MailFrom, "f", config.MailFrom, "sender address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.SecureCookies, "k", config.SecureCookies, "secure cookies")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			config.SessionMaxAge = time.Duration(*sessionMaxAge) * time.Hour
		case "t":
			config.VerificationTokenMaxAge = time.Duration(*tokenMaxAge) * time.Hour
		}
	})
}
