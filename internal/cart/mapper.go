package cart

type productPayload struct {
	ID              string   `json:"_id"`
	AltID           string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discounted_price"`
	Stock           int      `json:"stock"`
	ImageURL        string   `json:"image_url"`
}

type cartItemPayload struct {
	Product  productPayload `json:"product"`
	Quantity int            `json:"quantity"`
}

type cartPayload struct {
	Items      []cartItemPayload `json:"items"`
	TotalPrice *float64          `json:"total_price"`
	Message    string            `json:"message"`
}

func toProduct(p productPayload) Product {
	id := p.ID
	if id == "" {
		id = p.AltID
	}
	return Product{
		ID:              id,
		Name:            p.Name,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Stock:           p.Stock,
		ImageURL:        p.ImageURL,
	}
}

func toFetchResult(p *cartPayload) *FetchResult {
	if p == nil {
		return &FetchResult{}
	}

	lines := make([]Line, 0, len(p.Items))
	for _, item := range p.Items {
		lines = append(lines, Line{
			Product:  toProduct(item.Product),
			Quantity: item.Quantity,
		})
	}

	return &FetchResult{
		Lines:   lines,
		Total:   p.TotalPrice,
		Message: p.Message,
	}
}
