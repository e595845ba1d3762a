package common

// SessionCookieName is the cookie carrying the signed session envelope.
const SessionCookieName = "dishdash.session-token"

// SecureSessionCookieName is used instead of SessionCookieName when cookies
// are restricted to HTTPS.
const SecureSessionCookieName = "__Secure-dishdash.session-token"

// CSRFCookieName carries the double-submit token for the sign-in form.
const CSRFCookieName = "dishdash.csrf-token"

// SecureCSRFCookieName is used instead of CSRFCookieName over HTTPS.
const SecureCSRFCookieName = "__Host-dishdash.csrf-token"
