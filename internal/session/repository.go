package session

import (
	"context"

	"shopfront/internal/backend"
)

// Repository is the auth surface of the commerce backend.
type Repository interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, input RegisterInput) (*Credentials, error)
	Profile(ctx context.Context) (*User, error)
}

type repository struct {
	client *backend.Client
}

func NewRepository(client *backend.Client) Repository {
	return &repository{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *repository) Login(ctx context.Context, email, password string) (*Credentials, error) {
	payload, err := backend.Post[loginRequest, authPayload](ctx, r.client, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return toCredentials(payload), nil
}

func (r *repository) Register(ctx context.Context, input RegisterInput) (*Credentials, error) {
	payload, err := backend.Post[registerRequest, authPayload](ctx, r.client, "/auth/register", registerRequest{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return toCredentials(payload), nil
}

func (r *repository) Profile(ctx context.Context) (*User, error) {
	payload, err := backend.Get[userPayload](ctx, r.client, "/user/profile")
	if err != nil {
		return nil, err
	}
	return toUser(payload), nil
}
