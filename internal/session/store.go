package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. It carries the
// client-safe part of the user record; the password hash never enters
// session state.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) for unknown or expired session ids, so a
// destroyed session and a never-issued one are indistinguishable.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
