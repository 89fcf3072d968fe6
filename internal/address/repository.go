package address

import (
	"context"
	"fmt"
	"net/url"

	"shopfront/internal/backend"
)

const basePath = "/user/address/shipping"

// Repository is the shipping-address surface of the commerce backend.
type Repository interface {
	List(ctx context.Context) ([]Address, error)
	Create(ctx context.Context, input Input) error
	Update(ctx context.Context, id string, input Input) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

type listPayload struct {
	Address []addressPayload `json:"address"`
}

func (r *repository) List(ctx context.Context) ([]Address, error) {
	payload, err := backend.Get[listPayload](ctx, r.client, basePath)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	out := make([]Address, 0, len(payload.Address))
	for _, a := range payload.Address {
		out = append(out, toAddress(a))
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, input Input) error {
	_, err := backend.Post[addressPayload, listPayload](ctx, r.client, basePath, fromInput(input))
	return err
}

func (r *repository) Update(ctx context.Context, id string, input Input) error {
	path := basePath + "/" + url.PathEscape(id)
	_, err := backend.Put[addressPayload, listPayload](ctx, r.client, path, fromInput(input))
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	path := basePath + "/" + url.PathEscape(id)
	_, err := backend.Delete[struct{}](ctx, r.client, path)
	return err
}
