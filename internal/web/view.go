package web

import (
	"slices"

	"shopfront/internal/address"
	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/customer"
	"shopfront/internal/session"
)

type userView struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Wishlist []string `json:"wishlist"`
}

type sessionView struct {
	Loading bool      `json:"loading"`
	User    *userView `json:"user"`
}

func toSessionView(s session.Session) sessionView {
	return sessionView{Loading: s.Loading, User: toUserView(s.User)}
}

func toUserView(u *session.User) *userView {
	if u == nil {
		return nil
	}

	wishlist := make([]string, 0, len(u.Wishlist))
	for id := range u.Wishlist {
		wishlist = append(wishlist, id)
	}
	slices.Sort(wishlist)

	return &userView{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.DisplayName,
		Role:     string(u.Role),
		Wishlist: wishlist,
	}
}

type cartItemView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Stock     int     `json:"stock"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type cartView struct {
	Items   []cartItemView `json:"items"`
	Total   float64        `json:"total"`
	Message string         `json:"message,omitempty"`
}

func toCartView(c *cart.Cart) cartView {
	items := make([]cartItemView, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, cartItemView{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.SellingPrice(),
			Stock:     line.Product.Stock,
			ImageURL:  line.Product.ImageURL,
		})
	}
	return cartView{Items: items, Total: c.Total, Message: c.Message}
}

type couponView struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

type checkoutView struct {
	Items       []cartItemView        `json:"items"`
	Draft       checkout.DraftAddress `json:"draft"`
	Coupon      *couponView           `json:"coupon"`
	CouponError string                `json:"coupon_error,omitempty"`
	Pricing     checkout.Breakdown    `json:"pricing"`
}

type addressView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	SubDistrict string `json:"sub_district,omitempty"`
	District    string `json:"district"`
	Province    string `json:"province"`
	ZipCode     string `json:"zip_code"`
	Label       string `json:"label,omitempty"`
	Detail      string `json:"detail,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

type customerView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type customerPageView struct {
	Customers []customerView `json:"customers"`
	Page      int            `json:"page"`
	Pages     int            `json:"pages"`
	Total     int            `json:"total"`
}

func toCustomerPageView(p *customer.Page) customerPageView {
	customers := make([]customerView, 0, len(p.Customers))
	for _, c := range p.Customers {
		customers = append(customers, customerView{
			ID:    c.ID,
			Email: c.Email,
			Name:  c.DisplayName,
			Role:  string(c.Role),
		})
	}
	return customerPageView{
		Customers: customers,
		Page:      p.Page,
		Pages:     p.Pages,
		Total:     p.Total,
	}
}

func toAddressViews(addrs []address.Address) []addressView {
	out := make([]addressView, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, addressView{
			ID:          a.ID,
			Name:        a.Name,
			Phone:       a.Phone,
			AddressLine: a.AddressLine,
			SubDistrict: a.SubDistrict,
			District:    a.District,
			Province:    a.Province,
			ZipCode:     a.ZipCode,
			Label:       a.Label,
			Detail:      a.Detail,
			IsDefault:   a.IsDefault,
		})
	}
	return out
}
