// Package session persists the viewer's credentials and identity between
// runs, standing in for the browser's accessToken/user storage. It is a
// best-effort mirror: the backend remains authoritative and a corrupt or
// missing file simply means signed-out.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tuber/internal/vidtube"
)

// document is the on-disk shape.
type document struct {
	AccessToken  string        `json:"accessToken,omitempty"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	User         *vidtube.User `json:"user,omitempty"`
	DeviceID     string        `json:"deviceId"`
}

// Session is a thread-safe credential store backed by a JSON file. Writes are
// whole-document replacements; last write wins, same as the browser storage
// it mirrors.
type Session struct {
	mu   sync.Mutex
	path string
	doc  document
}

var _ vidtube.TokenSource = (*Session)(nil)

// Load reads the session file. Missing or corrupt files yield a signed-out
// session rather than an error.
func Load(path string) *Session {
	s := &Session{path: path}
	raw, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(raw, &s.doc)
	}
	if s.doc.DeviceID == "" {
		s.doc.DeviceID = uuid.NewString()
		s.persistLocked()
	}
	return s
}

// AccessToken implements vidtube.TokenSource.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.AccessToken
}

// RefreshToken implements vidtube.TokenSource.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.RefreshToken
}

// SetAccessToken implements vidtube.TokenSource.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.AccessToken = token
	s.persistLocked()
}

// ClearAccessToken implements vidtube.TokenSource.
func (s *Session) ClearAccessToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.AccessToken = ""
	s.persistLocked()
}

// SetAuth stores a full login/register payload.
func (s *Session) SetAuth(payload vidtube.AuthPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := payload.User
	s.doc.AccessToken = payload.AccessToken
	if payload.RefreshToken != "" {
		s.doc.RefreshToken = payload.RefreshToken
	}
	s.doc.User = &user
	s.persistLocked()
}

// SetUser updates the cached identity without touching tokens.
func (s *Session) SetUser(user vidtube.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.User = &user
	s.persistLocked()
}

// Clear signs the viewer out locally.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.AccessToken = ""
	s.doc.RefreshToken = ""
	s.doc.User = nil
	s.persistLocked()
}

// User returns the cached identity, if any.
func (s *Session) User() (vidtube.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.User == nil {
		return vidtube.User{}, false
	}
	return *s.doc.User, true
}

// UserID returns the cached user id, or empty when signed out.
func (s *Session) UserID() string {
	if user, ok := s.User(); ok {
		return user.ID
	}
	return ""
}

// Authenticated reports whether any access token is stored. The token may
// still be expired; the client's refresh-and-retry handles that.
func (s *Session) Authenticated() bool {
	return s.AccessToken() != ""
}

// DeviceID returns the stable per-install identifier.
func (s *Session) DeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.DeviceID
}

// TokenExpiry peeks at the access token's exp claim without verifying the
// signature (the client never validates tokens, only the backend does).
// Returns zero time when the token is absent or unreadable.
func (s *Session) TokenExpiry() time.Time {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func (s *Session) persistLocked() {
	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o600)
}
