package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("checkout has no cart lines")
	ErrIncompleteAddress = errors.New("please complete the shipping address")
	ErrInvalidPayment    = errors.New("unsupported payment method")
)

// genericCouponError is shown when the backend rejects a coupon without
// giving a reason of its own.
const genericCouponError = "invalid coupon code"
