// Package routeguard decides whether a navigation target may render.
// The decision is a pure function of the target view and session
// presence; it performs no I/O and has no side effects.
package routeguard

// Views the guard redirects to
const (
	LoginView   = "/login"
	DefaultView = "/"
)

// publicViews do not require an authenticated session
var publicViews = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
}

// Action is the guard's verdict
type Action int

const (
	// Allow lets the navigation proceed unchanged
	Allow Action = iota
	// Redirect sends the user to Decision.Location instead
	Redirect
)

// Decision is the outcome of a guard check
type Decision struct {
	Action   Action
	Location string
}

// IsPublic reports whether the target view is on the public allowlist
func IsPublic(target string) bool {
	return publicViews[target]
}

// Decide returns the navigation decision for a target view. A public
// view with a live session redirects home (no login page for an
// already-authenticated user); a protected view without a session
// redirects to login.
func Decide(target string, sessionPresent bool) Decision {
	if IsPublic(target) {
		if sessionPresent {
			return Decision{Action: Redirect, Location: DefaultView}
		}
		return Decision{Action: Allow}
	}

	if !sessionPresent {
		return Decision{Action: Redirect, Location: LoginView}
	}
	return Decision{Action: Allow}
}
