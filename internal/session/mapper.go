package session

// userPayload tolerates both `_id` and `id` keys; the backend is not
// consistent about which one it emits.
type userPayload struct {
	ID       string   `json:"_id"`
	AltID    string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Wishlist []string `json:"wishlist"`
}

// authPayload is the login/register response: token plus the user's
// fields at the top level.
type authPayload struct {
	userPayload
	Token string `json:"token"`
}

func toUser(p *userPayload) *User {
	if p == nil {
		return nil
	}

	id := p.ID
	if id == "" {
		id = p.AltID
	}

	wishlist := make(map[string]struct{}, len(p.Wishlist))
	for _, productID := range p.Wishlist {
		wishlist[productID] = struct{}{}
	}

	return &User{
		ID:          id,
		Email:       p.Email,
		DisplayName: p.Name,
		Role:        ParseRole(p.Role),
		Wishlist:    wishlist,
	}
}

func toCredentials(p *authPayload) *Credentials {
	if p == nil {
		return nil
	}
	return &Credentials{
		Token: p.Token,
		User:  toUser(&p.userPayload),
	}
}
