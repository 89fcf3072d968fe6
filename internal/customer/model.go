package customer

import "shopfront/internal/session"

type Customer struct {
	ID          string
	Email       string
	DisplayName string
	Role        session.Role
}

// Page is one page of the admin customer list.
type Page struct {
	Customers []Customer
	Page      int
	Pages     int
	Total     int
}
