package guard

import (
	"net/http"

	"shopfront/internal/session"
)

const (
	loginRoute = "/login"
	homeRoute  = "/"
)

// SessionSource yields the session snapshot a policy is judged against.
type SessionSource interface {
	Snapshot() session.Session
}

// Require wraps a handler with a policy. The policy is re-evaluated on
// every request from a fresh snapshot, so a session change takes effect
// immediately.
func Require(store SessionSource, policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch Evaluate(store.Snapshot(), policy) {
			case Wait:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session is still loading", http.StatusServiceUnavailable)
			case RedirectLogin:
				http.Redirect(w, r, loginRoute, http.StatusSeeOther)
			case RedirectHome:
				http.Redirect(w, r, homeRoute, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
