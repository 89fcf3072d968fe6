package web

import (
	"net/http"

	"shopfront/internal/guard"
	"shopfront/internal/session"
)

// Routes builds the guarded handler tree. Policies mirror the
// storefront's screens: auth routes are guest-only, the shopping
// surface needs a session, the customer screen is staff-only.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	guestOnly := guard.Require(h.sessions, guard.GuestOnly())
	authed := guard.Require(h.sessions, guard.Authenticated())
	staff := guard.Require(h.sessions, guard.Roles(session.RoleAdmin, session.RoleEmployee))
	adminOnly := guard.Require(h.sessions, guard.Roles(session.RoleAdmin))

	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /me", h.handleMe)
	mux.HandleFunc("GET /cart/count", h.handleCartCount)

	mux.Handle("POST /login", guestOnly(http.HandlerFunc(h.handleLogin)))
	mux.Handle("POST /register", guestOnly(http.HandlerFunc(h.handleRegister)))
	mux.Handle("POST /logout", authed(http.HandlerFunc(h.handleLogout)))

	mux.Handle("GET /cart", authed(http.HandlerFunc(h.handleCartGet)))
	mux.Handle("POST /cart", authed(http.HandlerFunc(h.handleCartAdd)))
	mux.Handle("PUT /cart/{productID}", authed(http.HandlerFunc(h.handleCartUpdate)))
	mux.Handle("DELETE /cart/{productID}", authed(http.HandlerFunc(h.handleCartRemove)))

	mux.Handle("POST /checkout", authed(http.HandlerFunc(h.handleCheckoutStart)))
	mux.Handle("GET /checkout", authed(http.HandlerFunc(h.handleCheckoutView)))
	mux.Handle("PUT /checkout/address", authed(http.HandlerFunc(h.handleCheckoutDraft)))
	mux.Handle("POST /checkout/address/{addressID}", authed(http.HandlerFunc(h.handleCheckoutSelectAddress)))
	mux.Handle("POST /checkout/coupon", authed(http.HandlerFunc(h.handleCheckoutCoupon)))
	mux.Handle("DELETE /checkout/coupon", authed(http.HandlerFunc(h.handleCheckoutCouponRemove)))
	mux.Handle("POST /checkout/order", authed(http.HandlerFunc(h.handleCheckoutSubmit)))

	mux.Handle("GET /addresses", authed(http.HandlerFunc(h.handleAddressList)))
	mux.Handle("POST /addresses", authed(http.HandlerFunc(h.handleAddressCreate)))
	mux.Handle("PUT /addresses/{addressID}", authed(http.HandlerFunc(h.handleAddressUpdate)))
	mux.Handle("DELETE /addresses/{addressID}", authed(http.HandlerFunc(h.handleAddressDelete)))

	mux.Handle("GET /admin/customers", staff(http.HandlerFunc(h.handleCustomerList)))
	mux.Handle("DELETE /admin/customers/{customerID}", adminOnly(http.HandlerFunc(h.handleCustomerDelete)))

	return mux
}
