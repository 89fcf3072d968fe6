package session

// Role is the closed set of roles a session can carry. Guest stands in
// for the unauthenticated state so route policies can name it explicitly.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ParseRole maps the backend's free-form role string onto the closed set.
// Anything unrecognized is treated as a plain customer.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleCustomer, RoleGuest:
		return Role(s)
	default:
		return RoleCustomer
	}
}

type User struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role
	Wishlist    map[string]struct{}
}

// Session is the client's view of the authenticated user, or absence
// thereof. Loading is true only during the initial token exchange.
type Session struct {
	User    *User
	Loading bool
}

// Role returns the effective role, guest when nobody is signed in.
func (s Session) Role() Role {
	if s.User == nil {
		return RoleGuest
	}
	return s.User.Role
}

// Credentials is what the backend hands back on login or register.
type Credentials struct {
	Token string
	User  *User
}

type RegisterInput struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8"`
	DisplayName string `validate:"required"`
}

// AuthResult is the discriminated outcome of login/register. Failures are
// always folded into Err; callers never see a raw error.
type AuthResult struct {
	Success bool
	User    *User
	Err     string
}
