package address

import (
	"context"
	"errors"

	"shopfront/internal/logger"

	"go.uber.org/zap"
)

var ErrMissingID = errors.New("address id is required")

// Service defines the address book. Every mutation re-lists from the
// server instead of patching locally: addresses are low-frequency data
// and the server stays the source of truth.
type Service interface {
	List(ctx context.Context) ([]Address, error)
	Create(ctx context.Context, input Input) ([]Address, error)
	Update(ctx context.Context, id string, input Input) ([]Address, error)
	Delete(ctx context.Context, id string) ([]Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Address, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, input Input) ([]Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
	)

	if err := s.repo.Create(ctx, input); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created")
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, input Input) ([]Address, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Update"),
		zap.String("address_id", id),
	)

	if err := s.repo.Update(ctx, id, input); err != nil {
		log.Error("failed to update address", zap.Error(err))
		return nil, err
	}

	log.Info("address updated")
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id string) ([]Address, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Delete"),
		zap.String("address_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete address", zap.Error(err))
		return nil, err
	}

	log.Info("address deleted")
	return s.repo.List(ctx)
}
