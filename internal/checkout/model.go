package checkout

import "shopfront/internal/address"

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCOD          PaymentMethod = "cod"
)

// DraftAddress is an editable, unsaved copy of address fields. Editing a
// draft never touches the saved address it was copied from.
type DraftAddress struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	AddressLine string `json:"address_line" validate:"required"`
	SubDistrict string `json:"sub_district"`
	District    string `json:"district" validate:"required"`
	Province    string `json:"province" validate:"required"`
	ZipCode     string `json:"zip_code" validate:"required"`
	Label       string `json:"label"`
	Detail      string `json:"detail"`
}

// DraftFrom copies a saved address into a fresh draft. One-way: the
// draft carries no reference back to the address book entry.
func DraftFrom(a address.Address) DraftAddress {
	return DraftAddress{
		Name:        a.Name,
		Phone:       a.Phone,
		AddressLine: a.AddressLine,
		SubDistrict: a.SubDistrict,
		District:    a.District,
		Province:    a.Province,
		ZipCode:     a.ZipCode,
		Label:       a.Label,
		Detail:      a.Detail,
	}
}

// CouponCheck is the backend's verdict on a coupon code at a subtotal.
type CouponCheck struct {
	Valid    bool
	Discount float64
	Code     string
	ID       string
	Message  string
}

// OrderInput is the assembled order draft sent to the backend.
type OrderInput struct {
	ShippingAddress DraftAddress
	PaymentMethod   PaymentMethod
	CouponCode      string
}
