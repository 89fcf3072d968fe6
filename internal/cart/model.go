package cart

// Product is the cart's snapshot of a product at the time it was added.
type Product struct {
	ID              string
	Name            string
	Price           float64
	DiscountedPrice *float64
	Stock           int
	ImageURL        string
}

// SellingPrice prefers the discounted price and falls back to the
// original one. A product with neither prices at 0.
func (p Product) SellingPrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// Line is one product/quantity pairing in the server-side cart.
type Line struct {
	Product  Product
	Quantity int
}

// Cart is the client's transient view of the server-side cart. Message
// carries any informational notice the server attached.
type Cart struct {
	Lines   []Line
	Total   float64
	Message string
}

// FetchResult is the raw cart as the backend returned it. Total is nil
// when the server omitted it and the client must compute one.
type FetchResult struct {
	Lines   []Line
	Total   *float64
	Message string
}
