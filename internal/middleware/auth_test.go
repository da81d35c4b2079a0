package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"session-auth-service/internal/session"
)

// stubStore holds sessions in a map, including already-expired ones,
// so the guard's own expiry check is exercised.
type stubStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]session.Session)}
}

func (s *stubStore) Create(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = sess
	return nil
}

func (s *stubStore) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *stubStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func guardedHandler(store session.Store) http.Handler {
	auth := NewAuthMiddleware(store)
	return auth.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "no session in context", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sess.Username))
	}))
}

func request(h http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireSessionNoCookie(t *testing.T) {
	h := guardedHandler(newStubStore())

	rec := request(h, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSessionUnknownID(t *testing.T) {
	h := guardedHandler(newStubStore())

	rec := request(h, &http.Cookie{Name: session.CookieName, Value: "unknown"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSessionLive(t *testing.T) {
	store := newStubStore()
	_ = store.Create(context.Background(), session.Session{
		SessionID: "sid-live",
		UserID:    "user-1",
		Username:  "sue",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	h := guardedHandler(store)
	rec := request(h, &http.Cookie{Name: session.CookieName, Value: "sid-live"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "sue" {
		t.Fatalf("expected session username in context, got %q", rec.Body.String())
	}
}

func TestRequireSessionExpired(t *testing.T) {
	store := newStubStore()
	_ = store.Create(context.Background(), session.Session{
		SessionID: "sid-stale",
		UserID:    "user-1",
		Username:  "sue",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	h := guardedHandler(store)
	rec := request(h, &http.Cookie{Name: session.CookieName, Value: "sid-stale"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session, got %d", rec.Code)
	}

	// The stale entry is reaped on rejection.
	sess, err := store.Get(context.Background(), "sid-stale")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sess != nil {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestRequireSessionDestroyed(t *testing.T) {
	store := newStubStore()
	_ = store.Create(context.Background(), session.Session{
		SessionID: "sid-gone",
		UserID:    "user-1",
		Username:  "sue",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	_ = store.Delete(context.Background(), "sid-gone")

	h := guardedHandler(store)
	rec := request(h, &http.Cookie{Name: session.CookieName, Value: "sid-gone"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for destroyed session, got %d", rec.Code)
	}
}
