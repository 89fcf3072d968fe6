package checkout

import (
	"context"
	"errors"
	"sync"

	"shopfront/internal/backend"
	"shopfront/internal/cart"
	"shopfront/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrCouponApplied = errors.New("a coupon is already applied")

// Flow holds one checkout in progress: the cart lines fixed on entry,
// the draft shipping address and the applied coupon. A coupon is only
// validated against the subtotal at apply time; it is deliberately not
// re-checked when the lines change, since the lines are fixed per entry.
type Flow struct {
	repo  Repository
	count cart.Refresher

	mu        sync.Mutex
	lines     []cart.Line
	draft     DraftAddress
	coupon    *Coupon
	couponErr string

	validate *validator.Validate
}

func NewFlow(repo Repository, count cart.Refresher) *Flow {
	return &Flow{
		repo:     repo,
		count:    count,
		validate: validator.New(),
	}
}

// Begin enters checkout with the given cart lines. Any previously
// applied coupon is dropped; the draft address survives re-entry.
func (f *Flow) Begin(lines []cart.Line) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = lines
	f.coupon = nil
	f.couponErr = ""
}

// Lines returns the cart lines fixed at checkout entry.
func (f *Flow) Lines() []cart.Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lines
}

// Pricing recomputes the breakdown from the current state on every call.
func (f *Flow) Pricing() Breakdown {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Price(f.lines, f.coupon)
}

// UseAddress copies a saved address into the draft. One-way: later
// edits to the draft never touch the address book.
func (f *Flow) UseAddress(a DraftAddress) {
	f.SetDraft(a)
}

func (f *Flow) SetDraft(d DraftAddress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

func (f *Flow) Draft() DraftAddress {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Coupon returns the applied coupon, if any, and the last rejection
// reason, if any. The two are mutually exclusive.
func (f *Flow) Coupon() (*Coupon, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coupon, f.couponErr
}

// ApplyCoupon validates code against the current subtotal. A rejection
// clears any previously applied coupon and keeps the server's reason
// for display. Applying on top of an existing coupon is refused; the
// caller must remove it first.
func (f *Flow) ApplyCoupon(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.coupon != nil {
		return ErrCouponApplied
	}

	log := logger.FromCtx(ctx).With(
		zap.String("flow", "Checkout"),
		zap.String("method", "ApplyCoupon"),
	)

	subtotal := Price(f.lines, nil).Subtotal

	check, err := f.repo.CheckCoupon(ctx, code, subtotal)
	if err != nil {
		log.Warn("coupon check failed", zap.Error(err))
		f.coupon = nil
		f.couponErr = backend.Message(err, genericCouponError)
		return err
	}

	if !check.Valid {
		f.coupon = nil
		f.couponErr = check.Message
		if f.couponErr == "" {
			f.couponErr = genericCouponError
		}
		return nil
	}

	applied := check.Code
	if applied == "" {
		applied = code
	}

	f.coupon = &Coupon{ID: check.ID, Code: applied, Discount: check.Discount}
	f.couponErr = ""
	log.Info("coupon applied", zap.String("code", applied), zap.Float64("discount", check.Discount))
	return nil
}

// RemoveCoupon drops the applied coupon and any rejection reason.
func (f *Flow) RemoveCoupon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coupon = nil
	f.couponErr = ""
}

// Submit places the order. The draft must pass validation before any
// network call; on failure the whole draft is preserved for a retry.
// The lock is held across the request, so a second submission blocks
// until the first settles.
func (f *Flow) Submit(ctx context.Context, method PaymentMethod) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.String("flow", "Checkout"),
		zap.String("method", "Submit"),
	)

	if len(f.lines) == 0 {
		return "", ErrEmptyCart
	}

	switch method {
	case PaymentBankTransfer, PaymentCOD:
	default:
		return "", ErrInvalidPayment
	}

	if err := f.validate.Struct(f.draft); err != nil {
		return "", ErrIncompleteAddress
	}

	input := OrderInput{
		ShippingAddress: f.draft,
		PaymentMethod:   method,
	}
	if f.coupon != nil {
		input.CouponCode = f.coupon.Code
	}

	orderID, err := f.repo.PlaceOrder(ctx, input)
	if err != nil {
		log.Error("order submission failed", zap.Error(err))
		return "", err
	}

	log.Info("order placed", zap.String("order_id", orderID))

	// The server consumed the cart; reset for the next checkout and
	// bring the badge back in line.
	f.lines = nil
	f.coupon = nil
	f.couponErr = ""
	f.count.Refresh(ctx)

	return orderID, nil
}
