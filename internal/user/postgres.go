package user

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"session-auth-service/internal/db"
)

const uniqueViolation = "23505"

// PostgresStore persists user records in the users table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]Public, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, username FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Public, 0)
	for rows.Next() {
		var p Public
		if err := rows.Scan(&p.UserID, &p.Username); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// filterColumns guards against filter keys reaching SQL unvalidated.
var filterColumns = map[string]string{
	"username": "username",
	"user_id":  "user_id",
}

func (s *PostgresStore) FindOne(ctx context.Context, filter map[string]any) (*User, error) {
	if len(filter) == 0 {
		return nil, fmt.Errorf("user: empty filter")
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		if _, ok := filterColumns[k]; !ok {
			return nil, fmt.Errorf("user: unsupported filter field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		conds = append(conds, fmt.Sprintf("%s = $%d", filterColumns[k], i+1))
		args = append(args, filter[k])
	}

	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, password_hash
		FROM users
		WHERE `+strings.Join(conds, " AND "),
		args...,
	).Scan(&u.UserID, &u.Username, &u.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Public, error) {
	// A non-uuid id cannot match any row; asking Postgres to compare it
	// against the uuid column would error instead.
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var p Public
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, username FROM users
		WHERE user_id = $1
	`, id).Scan(&p.UserID, &p.Username)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *PostgresStore) Insert(ctx context.Context, username, passwordHash string) (*Public, error) {
	var p Public
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, username
	`, username, passwordHash).Scan(&p.UserID, &p.Username)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return &p, nil
}
