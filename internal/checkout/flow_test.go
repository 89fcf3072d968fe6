package checkout

import (
	"context"
	"testing"

	"shopfront/internal/address"
	"shopfront/internal/backend"
	"shopfront/internal/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CheckCoupon(ctx context.Context, code string, subtotal float64) (*CouponCheck, error) {
	args := m.Called(ctx, code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CouponCheck), args.Error(1)
}

func (m *MockRepository) PlaceOrder(ctx context.Context, input OrderInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// MockRefresher records badge refresh triggers.
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) {
	m.Called(ctx)
}

func validDraft() DraftAddress {
	return DraftAddress{
		Name:        "Somchai",
		Phone:       "0812345678",
		AddressLine: "1 Main St",
		District:    "Mueang",
		Province:    "Bangkok",
		ZipCode:     "10100",
	}
}

func TestApplyCoupon(t *testing.T) {
	lines := []cart.Line{{Product: cart.Product{ID: "p1", Price: 1200}, Quantity: 3}}

	t.Run("Valid coupon applied against the subtotal", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, "SAVE500", 3600.0).
			Return(&CouponCheck{Valid: true, Discount: 500, Code: "SAVE500", ID: "c1"}, nil)

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)

		require.NoError(t, flow.ApplyCoupon(context.Background(), "SAVE500"))

		coupon, reason := flow.Coupon()
		require.NotNil(t, coupon)
		assert.Equal(t, 500.0, coupon.Discount)
		assert.Empty(t, reason)
		assert.Equal(t, 3150.0, flow.Pricing().Total)
	})

	t.Run("Rejection keeps the server reason", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, "EXPIRED", mock.Anything).
			Return(&CouponCheck{Valid: false, Message: "coupon has expired"}, nil)

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)

		require.NoError(t, flow.ApplyCoupon(context.Background(), "EXPIRED"))

		coupon, reason := flow.Coupon()
		assert.Nil(t, coupon)
		assert.Equal(t, "coupon has expired", reason)
		assert.Equal(t, 0.0, flow.Pricing().Discount)
	})

	t.Run("Rejection without a reason falls back", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, mock.Anything, mock.Anything).
			Return(&CouponCheck{Valid: false}, nil)

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)
		flow.ApplyCoupon(context.Background(), "NOPE")

		_, reason := flow.Coupon()
		assert.Equal(t, genericCouponError, reason)
	})

	t.Run("Second apply refused while one is active", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, "SAVE500", mock.Anything).
			Return(&CouponCheck{Valid: true, Discount: 500, Code: "SAVE500"}, nil)

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)
		require.NoError(t, flow.ApplyCoupon(context.Background(), "SAVE500"))

		err := flow.ApplyCoupon(context.Background(), "OTHER")
		assert.ErrorIs(t, err, ErrCouponApplied)
		repo.AssertNumberOfCalls(t, "CheckCoupon", 1)
	})

	t.Run("Remove then re-apply", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, mock.Anything, mock.Anything).
			Return(&CouponCheck{Valid: true, Discount: 100, Code: "SAVE100"}, nil)

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)
		require.NoError(t, flow.ApplyCoupon(context.Background(), "SAVE100"))

		flow.RemoveCoupon()
		coupon, reason := flow.Coupon()
		assert.Nil(t, coupon)
		assert.Empty(t, reason)

		require.NoError(t, flow.ApplyCoupon(context.Background(), "SAVE100"))
		coupon, _ = flow.Coupon()
		require.NotNil(t, coupon)
	})

	t.Run("Transport failure clears the coupon", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &backend.APIError{Status: 500})

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)

		err := flow.ApplyCoupon(context.Background(), "SAVE500")
		assert.Error(t, err)

		coupon, reason := flow.Coupon()
		assert.Nil(t, coupon)
		assert.Equal(t, genericCouponError, reason)
	})

	t.Run("Re-entry drops the applied coupon", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CheckCoupon", mock.Anything, mock.Anything, mock.Anything).
			Return(&CouponCheck{Valid: true, Discount: 100, Code: "SAVE100"}, nil)

		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)
		require.NoError(t, flow.ApplyCoupon(context.Background(), "SAVE100"))

		flow.Begin(lines)
		coupon, _ := flow.Coupon()
		assert.Nil(t, coupon)
	})
}

func TestSubmit(t *testing.T) {
	lines := []cart.Line{{Product: cart.Product{ID: "p1", Price: 1200}, Quantity: 3}}

	t.Run("Incomplete address aborts before the network", func(t *testing.T) {
		repo := new(MockRepository)
		flow := NewFlow(repo, new(MockRefresher))
		flow.Begin(lines)

		draft := validDraft()
		draft.ZipCode = ""
		flow.SetDraft(draft)

		_, err := flow.Submit(context.Background(), PaymentCOD)

		assert.ErrorIs(t, err, ErrIncompleteAddress)
		repo.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
		// The draft survives for a retry.
		assert.Equal(t, draft, flow.Draft())
	})

	t.Run("Empty cart refused", func(t *testing.T) {
		flow := NewFlow(new(MockRepository), new(MockRefresher))
		flow.SetDraft(validDraft())

		_, err := flow.Submit(context.Background(), PaymentCOD)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("Unknown payment method refused", func(t *testing.T) {
		flow := NewFlow(new(MockRepository), new(MockRefresher))
		flow.Begin(lines)
		flow.SetDraft(validDraft())

		_, err := flow.Submit(context.Background(), PaymentMethod("crypto"))
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("Success resets the flow and refreshes the badge", func(t *testing.T) {
		repo := new(MockRepository)
		count := new(MockRefresher)
		repo.On("CheckCoupon", mock.Anything, mock.Anything, mock.Anything).
			Return(&CouponCheck{Valid: true, Discount: 500, Code: "SAVE500"}, nil)
		repo.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in OrderInput) bool {
			return in.CouponCode == "SAVE500" && in.PaymentMethod == PaymentBankTransfer
		})).Return("order-77", nil)
		count.On("Refresh", mock.Anything).Return()

		flow := NewFlow(repo, count)
		flow.Begin(lines)
		flow.SetDraft(validDraft())
		require.NoError(t, flow.ApplyCoupon(context.Background(), "SAVE500"))

		orderID, err := flow.Submit(context.Background(), PaymentBankTransfer)

		require.NoError(t, err)
		assert.Equal(t, "order-77", orderID)
		assert.Empty(t, flow.Lines())
		count.AssertNumberOfCalls(t, "Refresh", 1)
	})

	t.Run("Backend failure preserves the draft", func(t *testing.T) {
		repo := new(MockRepository)
		count := new(MockRefresher)
		repo.On("PlaceOrder", mock.Anything, mock.Anything).
			Return("", &backend.APIError{Status: 400, Message: "insufficient stock"})

		flow := NewFlow(repo, count)
		flow.Begin(lines)
		flow.SetDraft(validDraft())

		_, err := flow.Submit(context.Background(), PaymentCOD)

		require.Error(t, err)
		assert.Equal(t, "insufficient stock", backend.Message(err, "generic"))
		assert.Equal(t, validDraft(), flow.Draft())
		assert.NotEmpty(t, flow.Lines())
		count.AssertNotCalled(t, "Refresh", mock.Anything)
	})
}

func TestDraftFrom(t *testing.T) {
	saved := address.Address{
		ID:          "a1",
		Name:        "Somchai",
		Phone:       "0812345678",
		AddressLine: "1 Main St",
		SubDistrict: "Suan Luang",
		District:    "Mueang",
		Province:    "Bangkok",
		ZipCode:     "10100",
		Label:       "home",
		IsDefault:   true,
	}

	draft := DraftFrom(saved)
	assert.Equal(t, saved.Name, draft.Name)
	assert.Equal(t, saved.ZipCode, draft.ZipCode)

	// Editing the draft leaves the saved address untouched.
	draft.AddressLine = "2 Other Rd"
	assert.Equal(t, "1 Main St", saved.AddressLine)
}
