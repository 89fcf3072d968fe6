package checkout

import "shopfront/internal/cart"

// Shipping is free once the subtotal reaches the threshold, flat below it.
const (
	FreeShippingThreshold = 5000.0
	FlatShippingRate      = 50.0
)

// Coupon is a discount validated against a particular subtotal. It is
// transient: it lives only for the duration of one checkout.
type Coupon struct {
	ID       string
	Code     string
	Discount float64
}

// Breakdown is the derived pricing of a checkout.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Price derives the checkout pricing from the cart lines and the coupon,
// if any. Pure; callers recompute it instead of caching the result.
func Price(lines []cart.Line, coupon *Coupon) Breakdown {
	var subtotal float64
	for _, line := range lines {
		subtotal += float64(line.Quantity) * line.Product.SellingPrice()
	}

	shipping := FlatShippingRate
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}

	var discount float64
	if coupon != nil {
		discount = coupon.Discount
	}

	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}
