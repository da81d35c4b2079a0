package user

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User // keyed by user_id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]User),
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]Public, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Public, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })

	return out, nil
}

func (s *MemoryStore) FindOne(ctx context.Context, filter map[string]any) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(filter) == 0 {
		return nil, fmt.Errorf("user: empty filter")
	}
	for k := range filter {
		if k != "username" && k != "user_id" {
			return nil, fmt.Errorf("user: unsupported filter field %q", k)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if matches(u, filter) {
			found := u
			return &found, nil
		}
	}

	return nil, nil
}

func matches(u User, filter map[string]any) bool {
	for k, v := range filter {
		switch k {
		case "username":
			if u.Username != v {
				return false
			}
		case "user_id":
			if u.UserID != v {
				return false
			}
		}
	}
	return true
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*Public, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	p := u.Public()

	return &p, nil
}

func (s *MemoryStore) Insert(ctx context.Context, username, passwordHash string) (*Public, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrDuplicateUsername
		}
	}

	u := User{
		UserID:       uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	s.users[u.UserID] = u
	p := u.Public()

	return &p, nil
}
