package auth

import (
	"context"
	"net/http"
	"time"
)

// TokenInfo describes a validated session token.
type TokenInfo struct {
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Validator validates a raw session token and returns its info.
type Validator interface {
	Validate(ctx context.Context, token string) (*TokenInfo, error)
}

// Authorizer is the opaque authorization predicate consumed by the export
// handler: is this request allowed to export study data?
type Authorizer interface {
	Authorize(r *http.Request) bool
}
