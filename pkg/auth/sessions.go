package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// sessionSchema creates the session table. Tokens are never stored in the
// clear; only their SHA-256 hash is persisted.
const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    token_hash TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at);
`

// SessionStoreConfig configures the SQLite session store.
type SessionStoreConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SessionStore persists session tokens in SQLite using the pure-Go driver,
// keeping the auth database deployable without cgo. It implements
// Validator.
type SessionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSessionStore opens (and if necessary creates) the session database.
func NewSessionStore(cfg *SessionStoreConfig) (*SessionStore, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("session store path cannot be empty")
	}
	busyTimeout := cfg.BusyTimeout
	if busyTimeout == 0 {
		busyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}

	logger := slog.Default().With("component", "auth.sessions")
	logger.Info("session store initialized", "path", cfg.Path)

	return &SessionStore{db: db, logger: logger}, nil
}

// Create issues a new session token for the given user, valid for ttl.
// The raw token is returned exactly once; only its hash is stored.
func (s *SessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		hashToken(token), userID, now, now.Add(ttl),
	)
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Debug("session created", "user_id", userID, "expires_at", now.Add(ttl))
	return token, nil
}

// Validate checks a raw token against the stored hashes and expiry.
func (s *SessionStore) Validate(ctx context.Context, token string) (*TokenInfo, error) {
	var info TokenInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, created_at, expires_at FROM sessions WHERE token_hash = ?`,
		hashToken(token),
	).Scan(&info.UserID, &info.CreatedAt, &info.ExpiresAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unknown session token")
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}

	if time.Now().After(info.ExpiresAt) {
		return nil, fmt.Errorf("session expired")
	}

	return &info, nil
}

// Delete removes a session by its raw token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = ?`, hashToken(token))
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PruneExpired removes all sessions past their expiry and returns the
// number removed.
func (s *SessionStore) PruneExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned sessions: %w", err)
	}
	return deleted, nil
}

// Ping verifies the session database is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database connection.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// hashToken returns the hex SHA-256 of a raw token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
