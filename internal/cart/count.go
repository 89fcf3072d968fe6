package cart

import (
	"context"
	"slices"
	"sync"

	"shopfront/internal/logger"
	"shopfront/internal/session"

	"go.uber.org/zap"
)

// Sessions is the slice of the auth store the badge count needs.
type Sessions interface {
	IsAuthenticated() bool
	Subscribe(fn func(session.Session))
}

// Count is the badge-count store. It counts distinct cart lines, not
// summed quantities: the badge answers "how many different items".
// It is pull-based; Refresh is idempotent and safe to call redundantly.
type Count struct {
	repo     Repository
	sessions Sessions

	mu    sync.RWMutex
	value int
	subs  []func(int)
}

// NewCount builds the store and re-arms it on every session change, so
// login and logout update the badge without an explicit call.
func NewCount(repo Repository, sessions Sessions) *Count {
	c := &Count{repo: repo, sessions: sessions}
	sessions.Subscribe(func(session.Session) {
		c.Refresh(context.Background())
	})
	return c
}

// Value returns the current badge count.
func (c *Count) Value() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Subscribe registers fn to run after every count change.
func (c *Count) Subscribe(fn func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Refresh re-derives the count. Without a session it settles on zero
// with no network call. Fetch errors keep the previous value in place
// rather than resetting it, to avoid badge flicker.
func (c *Count) Refresh(ctx context.Context) {
	if !c.sessions.IsAuthenticated() {
		c.set(0)
		return
	}

	res, err := c.repo.Fetch(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("cart count refresh failed, keeping stale value", zap.Error(err))
		return
	}

	c.set(len(res.Lines))
}

func (c *Count) set(value int) {
	c.mu.Lock()
	changed := c.value != value
	c.value = value
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(value)
	}
}
