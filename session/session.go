package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the opaque session id.
const CookieName = "session_id"

// cookieMaxAge is 24h, matching the cookie set at login.
const cookieMaxAge = 86400

// Store holds active sessions in process memory, keyed by an opaque uuid.
// Only the username is kept; sensitive user data stays in the document store.
// Sessions do not survive a restart and are not shared across processes.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]string // session id -> username
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]string),
	}
}

// Create establishes a new session for username and returns its id.
func (s *Store) Create(username string) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = username
	s.mu.Unlock()
	return id
}

// Username returns the username bound to the session id, if any.
func (s *Store) Username(id string) (string, bool) {
	s.mu.RLock()
	username, ok := s.sessions[id]
	s.mu.RUnlock()
	return username, ok
}

// Destroy removes the session. Destroying an unknown or already-destroyed
// session is a no-op.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Authenticate resolves the request's session cookie to a username.
func (s *Store) Authenticate(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return s.Username(cookie.Value)
}

// SetCookie attaches the session cookie to the response.
func SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,  // Prevent JS access
		Secure:   false, // True in prod HTTPS
		MaxAge:   cookieMaxAge,
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
