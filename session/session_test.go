package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestStoreSetAndClear(t *testing.T) {
	store := NewStore("")

	if store.Present() {
		t.Error("Expected no session at start")
	}
	if store.Label() != "" {
		t.Errorf("Expected empty label, got %q", store.Label())
	}

	store.Set("opaque-token", "user@example.com")

	token, ok := store.Token()
	if !ok {
		t.Fatal("Expected session present after Set")
	}
	if token != "opaque-token" {
		t.Errorf("Expected token 'opaque-token', got %q", token)
	}
	if store.Label() != "user@example.com" {
		t.Errorf("Expected label 'user@example.com', got %q", store.Label())
	}

	store.Clear()

	if store.Present() {
		t.Error("Expected no session after Clear")
	}
	if _, ok := store.Token(); ok {
		t.Error("Expected no token after Clear")
	}
}

func TestStoreExpiredJWTReportedAbsent(t *testing.T) {
	store := NewStore("")

	store.Set(signedToken(t, time.Now().Add(-time.Hour)), "user@example.com")
	if store.Present() {
		t.Error("Expected expired token to be reported absent")
	}

	store.Set(signedToken(t, time.Now().Add(time.Hour)), "user@example.com")
	if !store.Present() {
		t.Error("Expected live token to be reported present")
	}
}

func TestStoreOpaqueTokenAssumedLive(t *testing.T) {
	store := NewStore("")
	store.Set("not-a-jwt", "user@example.com")

	if !store.Present() {
		t.Error("Expected opaque token to be assumed live")
	}
}

func TestStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path)
	store.Set("persisted-token", "user@example.com")

	// A fresh store on the same path picks up the session
	reloaded := NewStore(path)
	token, ok := reloaded.Token()
	if !ok {
		t.Fatal("Expected persisted session to be loaded")
	}
	if token != "persisted-token" {
		t.Errorf("Expected token 'persisted-token', got %q", token)
	}
	if reloaded.Label() != "user@example.com" {
		t.Errorf("Expected label 'user@example.com', got %q", reloaded.Label())
	}

	// Clear removes the file
	reloaded.Clear()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected session file removed after Clear")
	}

	empty := NewStore(path)
	if empty.Present() {
		t.Error("Expected no session after cleared store reload")
	}
}

func TestStoreCorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store := NewStore(path)
	if store.Present() {
		t.Error("Expected no session from corrupt file")
	}
}
