package guard

import (
	"slices"

	"shopfront/internal/session"
)

// Decision is the outcome of evaluating a policy against a session.
type Decision int

const (
	// Render lets the gated content through.
	Render Decision = iota
	// Wait means the session is still loading; show a placeholder and
	// make no redirect decision yet.
	Wait
	// RedirectLogin sends the visitor to the login route.
	RedirectLogin
	// RedirectHome sends the visitor to the home route.
	RedirectHome
)

// Policy describes what a route demands. An empty AllowedRoles set means
// any role passes; listing only RoleGuest makes a route guest-only.
type Policy struct {
	RequiresAuth bool
	AllowedRoles []session.Role
}

// Authenticated admits any signed-in user.
func Authenticated() Policy {
	return Policy{RequiresAuth: true}
}

// GuestOnly admits only visitors without a session.
func GuestOnly() Policy {
	return Policy{AllowedRoles: []session.Role{session.RoleGuest}}
}

// Roles admits signed-in users holding one of the given roles.
func Roles(roles ...session.Role) Policy {
	return Policy{RequiresAuth: true, AllowedRoles: roles}
}

// Evaluate is a pure function of the session snapshot. Order matters:
// loading wins, then the auth requirement, then the role set.
func Evaluate(s session.Session, p Policy) Decision {
	if s.Loading {
		return Wait
	}
	if p.RequiresAuth && s.User == nil {
		return RedirectLogin
	}
	if len(p.AllowedRoles) > 0 && !slices.Contains(p.AllowedRoles, s.Role()) {
		return RedirectHome
	}
	return Render
}
