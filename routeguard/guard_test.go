package routeguard

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		sessionPresent bool
		expected       Decision
	}{
		{"public without session allows", "/login", false, Decision{Action: Allow}},
		{"public with session redirects home", "/login", true, Decision{Action: Redirect, Location: DefaultView}},
		{"register with session redirects home", "/register", true, Decision{Action: Redirect, Location: DefaultView}},
		{"forgot-password without session allows", "/forgot-password", false, Decision{Action: Allow}},
		{"protected without session redirects login", "/", false, Decision{Action: Redirect, Location: LoginView}},
		{"protected with session allows", "/", true, Decision{Action: Allow}},
		{"deep protected without session redirects login", "/invoices", false, Decision{Action: Redirect, Location: LoginView}},
		{"deep protected with session allows", "/invoices", true, Decision{Action: Allow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.target, tt.sessionPresent)
			if got != tt.expected {
				t.Errorf("Decide(%q, %v) = %+v, want %+v", tt.target, tt.sessionPresent, got, tt.expected)
			}
		})
	}
}

func TestIsPublic(t *testing.T) {
	for _, view := range []string{"/login", "/register", "/forgot-password"} {
		if !IsPublic(view) {
			t.Errorf("Expected %s to be public", view)
		}
	}
	for _, view := range []string{"/", "/invoices", "/templates", ""} {
		if IsPublic(view) {
			t.Errorf("Expected %s to be protected", view)
		}
	}
}
