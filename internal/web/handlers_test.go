package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"shopfront/internal/address"
	"shopfront/internal/backend"
	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/customer"
	"shopfront/internal/session"
	"shopfront/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionRepo satisfies session.Repository.
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Login(ctx context.Context, email, password string) (*session.Credentials, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Credentials), args.Error(1)
}

func (m *MockSessionRepo) Register(ctx context.Context, input session.RegisterInput) (*session.Credentials, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Credentials), args.Error(1)
}

func (m *MockSessionRepo) Profile(ctx context.Context) (*session.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.User), args.Error(1)
}

// MockCartService satisfies cart.Service.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Load(ctx context.Context) (*cart.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, productID string, quantity int, options map[string]string) error {
	args := m.Called(ctx, productID, quantity, options)
	return args.Error(0)
}

func (m *MockCartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockAddressService satisfies address.Service.
type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) List(ctx context.Context) ([]address.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressService) Create(ctx context.Context, input address.Input) ([]address.Address, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, id string, input address.Input) ([]address.Address, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, id string) ([]address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

// MockCustomerService satisfies customer.Service.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, page int) (*customer.Page, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Page), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id string) (*customer.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Page), args.Error(1)
}

// MockCheckoutRepo satisfies checkout.Repository.
type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) CheckCoupon(ctx context.Context, code string, subtotal float64) (*checkout.CouponCheck, error) {
	args := m.Called(ctx, code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CouponCheck), args.Error(1)
}

func (m *MockCheckoutRepo) PlaceOrder(ctx context.Context, input checkout.OrderInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

type fakeBadge int

func (f fakeBadge) Value() int { return int(f) }

type nopRefresher struct{}

func (nopRefresher) Refresh(ctx context.Context) {}

type fixture struct {
	handler      http.Handler
	sessions     *session.Store
	sessionRepo  *MockSessionRepo
	cartSvc      *MockCartService
	checkoutRepo *MockCheckoutRepo
	addressSvc   *MockAddressService
	customerSvc  *MockCustomerService
	flow         *checkout.Flow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sessionRepo := new(MockSessionRepo)
	tokens := token.NewFileStore(filepath.Join(t.TempDir(), "token"))
	sessions := session.NewStore(sessionRepo, tokens)

	cartSvc := new(MockCartService)
	checkoutRepo := new(MockCheckoutRepo)
	flow := checkout.NewFlow(checkoutRepo, nopRefresher{})
	addressSvc := new(MockAddressService)
	customerSvc := new(MockCustomerService)
	client := backend.NewClient("http://backend.invalid", tokens)

	h := NewHandler(sessions, cartSvc, fakeBadge(3), flow, addressSvc, customerSvc, client)

	return &fixture{
		handler:      h.Routes(),
		sessions:     sessions,
		sessionRepo:  sessionRepo,
		cartSvc:      cartSvc,
		checkoutRepo: checkoutRepo,
		addressSvc:   addressSvc,
		customerSvc:  customerSvc,
		flow:         flow,
	}
}

func (f *fixture) signIn(t *testing.T, role session.Role) {
	t.Helper()
	f.sessions.Initialize(context.Background())
	f.sessionRepo.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(&session.Credentials{Token: "tok", User: &session.User{ID: "u1", Role: role}}, nil)
	res := f.sessions.Login(context.Background(), "a@b.co", "secret")
	require.True(t, res.Success)
}

func do(f *fixture, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestGuardedRoutes(t *testing.T) {
	t.Run("Placeholder while the session loads", func(t *testing.T) {
		f := newFixture(t)

		w := do(f, "GET", "/cart", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Anonymous shopper redirected to login", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.Initialize(context.Background())

		w := do(f, "GET", "/cart", "")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("Signed-in shopper cannot log in again", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)

		w := do(f, "POST", "/login", `{"email":"a@b.co","password":"x"}`)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("Customer kept out of the admin screen", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)

		w := do(f, "GET", "/admin/customers", "")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("Admin reaches the customer screen", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleAdmin)
		f.customerSvc.On("List", mock.Anything, 1).Return(&customer.Page{Page: 1, Pages: 1}, nil)

		w := do(f, "GET", "/admin/customers", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandlers(t *testing.T) {
	t.Run("Login success returns the user", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.Initialize(context.Background())
		f.sessionRepo.On("Login", mock.Anything, "a@b.co", "secret").
			Return(&session.Credentials{Token: "tok", User: &session.User{ID: "u1", Role: session.RoleCustomer}}, nil)

		w := do(f, "POST", "/login", `{"email":"a@b.co","password":"secret"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"u1"`)
	})

	t.Run("Login rejection carries the server message", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.Initialize(context.Background())
		f.sessionRepo.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &backend.APIError{Status: 401, Message: "invalid email or password"})

		w := do(f, "POST", "/login", `{"email":"a@b.co","password":"bad"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("Missing fields rejected before any call", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.Initialize(context.Background())

		w := do(f, "POST", "/login", `{"email":"a@b.co"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.sessionRepo.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Logout clears the session", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)

		w := do(f, "POST", "/logout", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, f.sessions.IsAuthenticated())
	})
}

func TestCartHandlers(t *testing.T) {
	t.Run("Update sends the absolute quantity and reloads", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		f.cartSvc.On("SetQuantity", mock.Anything, "p1", 4).Return(nil)
		f.cartSvc.On("Load", mock.Anything).Return(&cart.Cart{Total: 100}, nil)

		w := do(f, "PUT", "/cart/p1", `{"quantity":4}`)

		assert.Equal(t, http.StatusOK, w.Code)
		f.cartSvc.AssertExpectations(t)
	})

	t.Run("Badge count readable without auth", func(t *testing.T) {
		f := newFixture(t)

		w := do(f, "GET", "/cart/count", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":3}`, w.Body.String())
	})

	t.Run("Backend rejection surfaced verbatim", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		f.cartSvc.On("Add", mock.Anything, "p1", 99, map[string]string(nil)).
			Return(&backend.APIError{Status: 400, Message: "insufficient stock"})

		w := do(f, "POST", "/cart", `{"product_id":"p1","quantity":99}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "insufficient stock")
	})
}

func TestCheckoutHandlers(t *testing.T) {
	lines := []cart.Line{{Product: cart.Product{ID: "p1", Price: 1200}, Quantity: 3}}

	enterCheckout := func(t *testing.T, f *fixture) {
		t.Helper()
		f.cartSvc.On("Load", mock.Anything).Return(&cart.Cart{Lines: lines, Total: 3600}, nil)
		w := do(f, "POST", "/checkout", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	t.Run("Entry fixes the cart lines and prices them", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		enterCheckout(t, f)

		w := do(f, "GET", "/checkout", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"subtotal":3600`)
		assert.Contains(t, w.Body.String(), `"shipping":50`)
	})

	t.Run("Selecting a saved address copies it into the draft", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		enterCheckout(t, f)

		f.addressSvc.On("List", mock.Anything).Return([]address.Address{
			{ID: "a1", Name: "Somchai", Phone: "0812", AddressLine: "1 Main St",
				District: "Mueang", Province: "Bangkok", ZipCode: "10100"},
		}, nil)

		w := do(f, "POST", "/checkout/address/a1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Somchai", f.flow.Draft().Name)
	})

	t.Run("Submit redirects to the order confirmation", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		enterCheckout(t, f)

		f.flow.SetDraft(checkout.DraftAddress{
			Name: "Somchai", Phone: "0812", AddressLine: "1 Main St",
			District: "Mueang", Province: "Bangkok", ZipCode: "10100",
		})
		f.checkoutRepo.On("PlaceOrder", mock.Anything, mock.Anything).Return("order-77", nil)

		w := do(f, "POST", "/checkout/order", `{"payment_method":"cod"}`)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/orders/order-77", w.Header().Get("Location"))
		assert.Contains(t, w.Body.String(), "order-77")
	})

	t.Run("Submit with an incomplete draft makes no order call", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		enterCheckout(t, f)

		w := do(f, "POST", "/checkout/order", `{"payment_method":"cod"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		f.checkoutRepo.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("Coupon rejection rides along in the view", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		enterCheckout(t, f)

		f.checkoutRepo.On("CheckCoupon", mock.Anything, "EXPIRED", 3600.0).
			Return(&checkout.CouponCheck{Valid: false, Message: "coupon has expired"}, nil)

		w := do(f, "POST", "/checkout/coupon", `{"code":"EXPIRED"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "coupon has expired")
	})
}

func TestAddressHandlers(t *testing.T) {
	t.Run("Delete requires confirmation", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)

		w := do(f, "DELETE", "/addresses/a1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.addressSvc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Confirmed delete returns the reloaded list", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, session.RoleCustomer)
		f.addressSvc.On("Delete", mock.Anything, "a1").Return([]address.Address{}, nil)

		w := do(f, "DELETE", "/addresses/a1?confirm=true", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"addresses":[]}`, w.Body.String())
	})
}
