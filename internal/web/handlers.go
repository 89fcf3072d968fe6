package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shopfront/internal/address"
	"shopfront/internal/backend"
	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/customer"
	"shopfront/internal/logger"
	"shopfront/internal/session"

	"go.uber.org/zap"
)

const genericFailure = "something went wrong, please try again"

// Badge is the slice of the cart count store the handlers need.
type Badge interface {
	Value() int
}

// Handler is the storefront's local JSON surface. It only wires stores
// and services to routes; every decision lives below it.
type Handler struct {
	sessions  *session.Store
	cart      cart.Service
	badge     Badge
	checkout  *checkout.Flow
	addresses address.Service
	customers customer.Service
	client    *backend.Client
}

func NewHandler(
	sessions *session.Store,
	cartSvc cart.Service,
	badge Badge,
	flow *checkout.Flow,
	addresses address.Service,
	customers customer.Service,
	client *backend.Client,
) *Handler {
	return &Handler{
		sessions:  sessions,
		cart:      cartSvc,
		badge:     badge,
		checkout:  flow,
		addresses: addresses,
		customers: customers,
		client:    client,
	}
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

// fail maps an operation error onto the response. A 401 from the
// backend redirects to login right here at the call site; validation
// sentinels come back as 422; anything with a usable backend message
// keeps it verbatim.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, backend.ErrUnauthenticated) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	switch {
	case errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, address.ErrMissingID),
		errors.Is(err, customer.ErrMissingID),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrIncompleteAddress),
		errors.Is(err, checkout.ErrInvalidPayment),
		errors.Is(err, checkout.ErrCouponApplied):
		WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		WriteJSONError(w, backend.Message(err, genericFailure), apiErr.Status)
		return
	}

	logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
	WriteJSONError(w, genericFailure, http.StatusBadGateway)
}

// --- auth ---

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(r, &req) || req.Email == "" || req.Password == "" {
		WriteJSONError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	res := h.sessions.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		WriteJSONError(w, res.Err, http.StatusUnauthorized)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user": toUserView(res.User)})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decode(r, &req) || req.Email == "" || req.Password == "" || req.Name == "" {
		WriteJSONError(w, "email, password and name are required", http.StatusBadRequest)
		return
	}

	res := h.sessions.Register(r.Context(), session.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Name,
	})
	if !res.Success {
		WriteJSONError(w, res.Err, http.StatusUnprocessableEntity)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"user": toUserView(res.User)})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, toSessionView(h.sessions.Snapshot()))
}

// --- cart ---

func (h *Handler) handleCartGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Load(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCartView(c))
}

func (h *Handler) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string            `json:"product_id"`
		Quantity  int               `json:"quantity"`
		Options   map[string]string `json:"options"`
	}
	if !decode(r, &req) {
		WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cart.Add(r.Context(), req.ProductID, req.Quantity, req.Options); err != nil {
		h.fail(w, r, err)
		return
	}

	h.reloadCart(w, r)
}

func (h *Handler) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decode(r, &req) {
		WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cart.SetQuantity(r.Context(), r.PathValue("productID"), req.Quantity); err != nil {
		h.fail(w, r, err)
		return
	}

	h.reloadCart(w, r)
}

func (h *Handler) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), r.PathValue("productID")); err != nil {
		h.fail(w, r, err)
		return
	}

	h.reloadCart(w, r)
}

// reloadCart answers a mutation with the authoritative cart. The badge
// was already refreshed by the service, so a failed reload here leaves
// the UI stale but not corrupt.
func (h *Handler) reloadCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Load(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCartView(c))
}

func (h *Handler) handleCartCount(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]int{"count": h.badge.Value()})
}

// --- checkout ---

func (h *Handler) handleCheckoutStart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Load(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.checkout.Begin(c.Lines)
	h.renderCheckout(w)
}

func (h *Handler) handleCheckoutView(w http.ResponseWriter, r *http.Request) {
	h.renderCheckout(w)
}

func (h *Handler) renderCheckout(w http.ResponseWriter) {
	lines := h.checkout.Lines()
	items := toCartView(&cart.Cart{Lines: lines}).Items

	coupon, couponErr := h.checkout.Coupon()
	var cv *couponView
	if coupon != nil {
		cv = &couponView{Code: coupon.Code, Discount: coupon.Discount}
	}

	WriteJSON(w, http.StatusOK, checkoutView{
		Items:       items,
		Draft:       h.checkout.Draft(),
		Coupon:      cv,
		CouponError: couponErr,
		Pricing:     h.checkout.Pricing(),
	})
}

func (h *Handler) handleCheckoutDraft(w http.ResponseWriter, r *http.Request) {
	var draft checkout.DraftAddress
	if !decode(r, &draft) {
		WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.checkout.SetDraft(draft)
	h.renderCheckout(w)
}

func (h *Handler) handleCheckoutSelectAddress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("addressID")

	addrs, err := h.addresses.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	for _, a := range addrs {
		if a.ID == id {
			h.checkout.UseAddress(checkout.DraftFrom(a))
			h.renderCheckout(w)
			return
		}
	}

	WriteJSONError(w, "address not found", http.StatusNotFound)
}

func (h *Handler) handleCheckoutCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decode(r, &req) || req.Code == "" {
		WriteJSONError(w, "coupon code is required", http.StatusBadRequest)
		return
	}

	if err := h.checkout.ApplyCoupon(r.Context(), req.Code); err != nil {
		if errors.Is(err, checkout.ErrCouponApplied) {
			h.fail(w, r, err)
			return
		}
		// Rejection reasons ride along in the checkout view below.
	}

	h.renderCheckout(w)
}

func (h *Handler) handleCheckoutCouponRemove(w http.ResponseWriter, r *http.Request) {
	h.checkout.RemoveCoupon()
	h.renderCheckout(w)
}

func (h *Handler) handleCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if !decode(r, &req) {
		WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	orderID, err := h.checkout.Submit(r.Context(), checkout.PaymentMethod(req.PaymentMethod))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// See Other, so going back does not land on checkout again.
	w.Header().Set("Location", "/orders/"+orderID)
	WriteJSON(w, http.StatusSeeOther, map[string]string{"order_id": orderID})
}

// --- address book ---

func (h *Handler) handleAddressList(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.addresses.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"addresses": toAddressViews(addrs)})
}

func decodeAddressInput(r *http.Request) (address.Input, bool) {
	var req struct {
		Name        string `json:"name"`
		Phone       string `json:"phone"`
		AddressLine string `json:"address_line"`
		SubDistrict string `json:"sub_district"`
		District    string `json:"district"`
		Province    string `json:"province"`
		ZipCode     string `json:"zip_code"`
		Label       string `json:"label"`
		Detail      string `json:"detail"`
	}
	if !decode(r, &req) {
		return address.Input{}, false
	}
	return address.Input{
		Name:        req.Name,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		SubDistrict: req.SubDistrict,
		District:    req.District,
		Province:    req.Province,
		ZipCode:     req.ZipCode,
		Label:       req.Label,
		Detail:      req.Detail,
	}, true
}

func (h *Handler) handleAddressCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAddressInput(r)
	if !ok {
		WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	addrs, err := h.addresses.Create(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"addresses": toAddressViews(addrs)})
}

func (h *Handler) handleAddressUpdate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAddressInput(r)
	if !ok {
		WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	addrs, err := h.addresses.Update(r.Context(), r.PathValue("addressID"), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"addresses": toAddressViews(addrs)})
}

func (h *Handler) handleAddressDelete(w http.ResponseWriter, r *http.Request) {
	// Deletion needs an explicit confirmation from the user.
	if r.URL.Query().Get("confirm") != "true" {
		WriteJSONError(w, "confirmation required", http.StatusBadRequest)
		return
	}

	addrs, err := h.addresses.Delete(r.Context(), r.PathValue("addressID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"addresses": toAddressViews(addrs)})
}

// --- admin ---

func (h *Handler) handleCustomerList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			WriteJSONError(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	res, err := h.customers.List(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCustomerPageView(res))
}

func (h *Handler) handleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		WriteJSONError(w, "confirmation required", http.StatusBadRequest)
		return
	}

	res, err := h.customers.Delete(r.Context(), r.PathValue("customerID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCustomerPageView(res))
}

// --- health ---

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"backend": h.client.Stats(),
	})
}
