package cart

import (
	"context"

	"shopfront/internal/logger"

	"go.uber.org/zap"
)

// Refresher re-derives the badge count after a cart mutation. There is
// no push channel from the server, so every mutator has to trigger it.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Service defines the cart drawer's operations.
type Service interface {
	Load(ctx context.Context) (*Cart, error)
	Add(ctx context.Context, productID string, quantity int, options map[string]string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	Remove(ctx context.Context, productID string) error
}

type service struct {
	repo  Repository
	count Refresher
}

// NewService creates a new cart service
func NewService(repo Repository, count Refresher) Service {
	return &service{repo: repo, count: count}
}

// Load fetches the cart. The server's total is used verbatim when
// present; otherwise the total is recomputed from the lines.
func (s *service) Load(ctx context.Context) (*Cart, error) {
	res, err := s.repo.Fetch(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	total := 0.0
	if res.Total != nil {
		total = *res.Total
	} else {
		for _, line := range res.Lines {
			total += float64(line.Quantity) * line.Product.SellingPrice()
		}
	}

	return &Cart{
		Lines:   res.Lines,
		Total:   total,
		Message: res.Message,
	}, nil
}

func (s *service) Add(ctx context.Context, productID string, quantity int, options map[string]string) error {
	if productID == "" {
		return ErrMissingProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if err := s.repo.Add(ctx, productID, quantity, options); err != nil {
		return err
	}

	s.count.Refresh(ctx)
	return nil
}

// SetQuantity sends the absolute quantity to the server. Quantities
// below one are a no-op: no network call, no state change.
func (s *service) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrMissingProduct
	}
	if quantity < 1 {
		return nil
	}

	if err := s.repo.UpdateQuantity(ctx, productID, quantity); err != nil {
		return err
	}

	s.count.Refresh(ctx)
	return nil
}

// Remove deletes the line server-side. The badge count refreshes right
// after the delete so it cannot go stale if the caller's reload fails.
func (s *service) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrMissingProduct
	}

	if err := s.repo.Remove(ctx, productID); err != nil {
		return err
	}

	s.count.Refresh(ctx)
	return nil
}
