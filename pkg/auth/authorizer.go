package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "meridian_session"

// TokenAuthorizer authorizes requests by validating a session token taken
// from the session cookie or, failing that, an Authorization bearer
// header.
type TokenAuthorizer struct {
	validator Validator
	logger    *slog.Logger
}

// NewTokenAuthorizer creates an authorizer backed by the given validator.
func NewTokenAuthorizer(validator Validator) *TokenAuthorizer {
	return &TokenAuthorizer{
		validator: validator,
		logger:    slog.Default().With("component", "auth"),
	}
}

// Authorize reports whether the request carries a valid session token.
// Failures are logged at debug level only; the caller decides the HTTP
// response and no internals are exposed to the client.
func (a *TokenAuthorizer) Authorize(r *http.Request) bool {
	token := extractToken(r)
	if token == "" {
		a.logger.Debug("request without session token",
			"remote_addr", r.RemoteAddr,
			"path", r.URL.Path,
		)
		return false
	}

	info, err := a.validator.Validate(r.Context(), token)
	if err != nil {
		a.logger.Debug("session token rejected",
			"error", err,
			"remote_addr", r.RemoteAddr,
			"path", r.URL.Path,
		)
		return false
	}

	a.logger.Debug("request authorized",
		"user_id", info.UserID,
		"path", r.URL.Path,
	)
	return true
}

// extractToken pulls the session token from the request: cookie first,
// then a bearer Authorization header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}

	return ""
}
