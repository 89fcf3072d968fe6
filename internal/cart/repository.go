package cart

import (
	"context"
	"fmt"
	"net/url"

	"shopfront/internal/backend"
)

// Repository is the cart surface of the commerce backend. Quantities are
// always sent as absolute target values, never deltas.
type Repository interface {
	Fetch(ctx context.Context) (*FetchResult, error)
	Add(ctx context.Context, productID string, quantity int, options map[string]string) error
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	Remove(ctx context.Context, productID string) error
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

type addRequest struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options,omitempty"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func (r *repository) Fetch(ctx context.Context) (*FetchResult, error) {
	payload, err := backend.Get[cartPayload](ctx, r.client, "/cart")
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	return toFetchResult(payload), nil
}

func (r *repository) Add(ctx context.Context, productID string, quantity int, options map[string]string) error {
	_, err := backend.Post[addRequest, cartPayload](ctx, r.client, "/cart", addRequest{
		ProductID: productID,
		Quantity:  quantity,
		Options:   options,
	})
	return err
}

func (r *repository) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	path := "/cart/" + url.PathEscape(productID)
	_, err := backend.Put[updateRequest, cartPayload](ctx, r.client, path, updateRequest{Quantity: quantity})
	return err
}

func (r *repository) Remove(ctx context.Context, productID string) error {
	path := "/cart/" + url.PathEscape(productID)
	_, err := backend.Delete[struct{}](ctx, r.client, path)
	return err
}
