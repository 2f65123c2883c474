// Package session holds the process-wide authentication credential. The
// store has exactly two sanctioned writers: the login/register success
// path and the gateway's unauthorized handler. Everything else only
// reads.
package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store keeps the session credential and an optional display label. When
// constructed with a file path it persists both across restarts; that
// file is the only durable client-side state.
type Store struct {
	mu       sync.RWMutex
	token    string
	label    string
	filePath string
}

type persisted struct {
	Token string `json:"token"`
	Label string `json:"label,omitempty"`
}

// NewStore creates a session store. If filePath is non-empty, a
// previously persisted session is loaded from it.
func NewStore(filePath string) *Store {
	s := &Store{filePath: filePath}
	if filePath != "" {
		s.load()
	}
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("discarding unreadable session file", "path", s.filePath, "error", err)
		return
	}
	s.token = p.Token
	s.label = p.Label
}

func (s *Store) persist() {
	if s.filePath == "" {
		return
	}
	if s.token == "" {
		if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove session file", "path", s.filePath, "error", err)
		}
		return
	}
	data, err := json.Marshal(persisted{Token: s.token, Label: s.label})
	if err != nil {
		return
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		slog.Warn("failed to persist session", "path", s.filePath, "error", err)
	}
}

// Set stores a credential and display label. Called on successful login
// or registration.
func (s *Store) Set(token, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.label = label
	s.persist()
}

// Clear destroys the session. Called on explicit logout or when the
// backend rejects the credential.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.label = ""
	s.persist()
}

// Token returns the credential and whether a usable one is present
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || expired(s.token) {
		return "", false
	}
	return s.token, true
}

// Present reports whether a usable session exists
func (s *Store) Present() bool {
	_, ok := s.Token()
	return ok
}

// Label returns the display label, empty when no session exists
func (s *Store) Label() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ""
	}
	return s.label
}

// expired peeks at the token's exp claim without verifying the
// signature; the client has no signing key. A token that cannot be
// parsed as a JWT is treated as opaque and assumed live — the backend's
// 401 path remains the authority.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
