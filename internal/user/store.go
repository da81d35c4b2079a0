package user

import (
	"context"
	"errors"
)

// ErrDuplicateUsername is returned by Insert when the username unique
// constraint rejects the record. Two racing registrations for the same
// username resolve here, not in the availability check.
var ErrDuplicateUsername = errors.New("user: username already exists")

// Store defines how user records are persisted and looked up.
// Implementations must enforce username uniqueness on Insert.
type Store interface {
	// List returns every user as {user_id, username}, hashes excluded.
	List(ctx context.Context) ([]Public, error)

	// FindOne returns the single record matching every field in filter,
	// or (nil, nil) when no record matches. Supported fields: "username",
	// "user_id".
	FindOne(ctx context.Context, filter map[string]any) (*User, error)

	// FindByID returns the {user_id, username} projection for id,
	// or (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*Public, error)

	// Insert persists a new record and returns its projection.
	Insert(ctx context.Context, username, passwordHash string) (*Public, error)
}
