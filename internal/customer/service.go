package customer

import (
	"context"
	"errors"

	"shopfront/internal/logger"

	"go.uber.org/zap"
)

var ErrMissingID = errors.New("customer id is required")

// Service backs the admin customer screen.
type Service interface {
	List(ctx context.Context, page int) (*Page, error)
	Delete(ctx context.Context, id string) (*Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, page)
}

// Delete removes a customer and reloads the first page, keeping the
// table consistent with the server.
func (s *service) Delete(ctx context.Context, id string) (*Page, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Customer"),
		zap.String("method", "Delete"),
		zap.String("customer_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete customer", zap.Error(err))
		return nil, err
	}

	log.Info("customer deleted")
	return s.repo.List(ctx, 1)
}
