package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/server/auth"
	"github.com/dishdash/dishdash/internal/server/mailer"
	"github.com/dishdash/dishdash/internal/server/models"
)

// DefaultCallbackURL is where users land after signing in when no usable
// callback was requested.
const DefaultCallbackURL = "/dashboard"

// CallbackPath is the route that redeems magic links.
const CallbackPath = "/api/auth/callback/email"

// SafeCallbackURL returns raw when it is a same-origin absolute path, and
// DefaultCallbackURL otherwise.
func SafeCallbackURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return DefaultCallbackURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return DefaultCallbackURL
	}
	return raw
}

// SignInURL builds the link embedded in the email.
func (s *AuthService) SignInURL(identifier, token, callbackURL string) string {
	q := url.Values{}
	q.Set("callbackUrl", SafeCallbackURL(callbackURL))
	q.Set("email", identifier)
	q.Set("token", token)
	return strings.TrimRight(s.baseURL, "/") + CallbackPath + "?" + q.Encode()
}

// Issue creates a single-use verification token for email and mails the
// sign-in link. Earlier unconsumed links for the same address stay valid.
//
// Errors: common.ErrorValidation for a malformed address, common.ErrStorage
// when the token row cannot be written, common.ErrDelivery when the mail
// transport rejects the message.
func (s *AuthService) Issue(ctx context.Context, email, callbackURL string) error {
	identifier := common.NormalizeEmail(email)
	if err := s.validate.Var(identifier, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}

	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	vt := &models.VerificationToken{
		Identifier: identifier,
		Token:      auth.HashToken(token, s.tokenKey),
		Expires:    s.now().Add(s.tokenMaxAge),
	}
	if err := s.repomanager.VerificationTokens(s.db).Create(ctx, vt); err != nil {
		s.logger.Error(ctx, "store verification token", "email", identifier, "error", err)
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	link := s.SignInURL(identifier, token, callbackURL)
	msg, err := mailer.MagicLink(identifier, s.mailFrom, link, s.tokenMaxAge)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Warn(ctx, "magic link delivery failed", "email", identifier, "error", err)
		return err
	}

	s.logger.Info(ctx, "magic link issued", "email", identifier, "expires", vt.Expires)
	return nil
}
