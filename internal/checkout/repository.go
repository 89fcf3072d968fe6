package checkout

import (
	"context"
	"fmt"

	"shopfront/internal/backend"
)

// Repository is the coupon and order surface of the commerce backend.
type Repository interface {
	CheckCoupon(ctx context.Context, code string, subtotal float64) (*CouponCheck, error)
	PlaceOrder(ctx context.Context, input OrderInput) (string, error)
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

type couponCheckRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type couponCheckPayload struct {
	Valid      bool    `json:"valid"`
	Discount   float64 `json:"discount"`
	CouponCode string  `json:"coupon_code"`
	CouponID   string  `json:"coupon_id"`
	Message    string  `json:"message"`
}

type orderRequest struct {
	ShippingAddress DraftAddress `json:"shipping_address"`
	PaymentMethod   string       `json:"payment_method"`
	CouponCode      string       `json:"coupon_code,omitempty"`
}

type orderPayload struct {
	ID string `json:"_id"`
}

func (r *repository) CheckCoupon(ctx context.Context, code string, subtotal float64) (*CouponCheck, error) {
	payload, err := backend.Post[couponCheckRequest, couponCheckPayload](ctx, r.client, "/coupon/check", couponCheckRequest{
		Code:     code,
		Subtotal: subtotal,
	})
	if err != nil {
		return nil, fmt.Errorf("check coupon: %w", err)
	}

	return &CouponCheck{
		Valid:    payload.Valid,
		Discount: payload.Discount,
		Code:     payload.CouponCode,
		ID:       payload.CouponID,
		Message:  payload.Message,
	}, nil
}

func (r *repository) PlaceOrder(ctx context.Context, input OrderInput) (string, error) {
	payload, err := backend.Post[orderRequest, orderPayload](ctx, r.client, "/order", orderRequest{
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   string(input.PaymentMethod),
		CouponCode:      input.CouponCode,
	})
	if err != nil {
		return "", err
	}
	return payload.ID, nil
}
