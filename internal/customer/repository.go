package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"shopfront/internal/backend"
	"shopfront/internal/session"
)

// Repository is the admin user surface of the commerce backend.
type Repository interface {
	List(ctx context.Context, page int) (*Page, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

type userPayload struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type pagePayload struct {
	Users []userPayload `json:"users"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Total int           `json:"total"`
}

func (r *repository) List(ctx context.Context, page int) (*Page, error) {
	raw, err := backend.Get[json.RawMessage](ctx, r.client, "/user?page="+strconv.Itoa(page))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	// Older deployments return a bare array instead of the paged object.
	var legacy []userPayload
	if err := json.Unmarshal(*raw, &legacy); err == nil {
		return &Page{
			Customers: toCustomers(legacy),
			Page:      1,
			Pages:     1,
			Total:     len(legacy),
		}, nil
	}

	var paged pagePayload
	if err := json.Unmarshal(*raw, &paged); err != nil {
		return nil, fmt.Errorf("decode customer list: %w", err)
	}

	return &Page{
		Customers: toCustomers(paged.Users),
		Page:      paged.Page,
		Pages:     paged.Pages,
		Total:     paged.Total,
	}, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := backend.Delete[struct{}](ctx, r.client, "/user/"+url.PathEscape(id))
	return err
}

func toCustomers(payloads []userPayload) []Customer {
	out := make([]Customer, 0, len(payloads))
	for _, p := range payloads {
		id := p.ID
		if id == "" {
			id = p.AltID
		}
		out = append(out, Customer{
			ID:          id,
			Email:       p.Email,
			DisplayName: p.Name,
			Role:        session.ParseRole(p.Role),
		})
	}
	return out
}
