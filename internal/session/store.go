package session

import (
	"context"
	"slices"
	"sync"

	"shopfront/internal/backend"
	"shopfront/internal/logger"
	"shopfront/internal/token"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const genericAuthError = "something went wrong, please try again"

// Store owns the session. Everything else reads it through Snapshot or a
// subscription; nothing outside this package mutates it.
type Store struct {
	repo   Repository
	tokens token.Store

	mu      sync.RWMutex
	session Session
	subs    []func(Session)

	initOnce sync.Once
	validate *validator.Validate
}

func NewStore(repo Repository, tokens token.Store) *Store {
	return &Store{
		repo:     repo,
		tokens:   tokens,
		session:  Session{Loading: true},
		validate: validator.New(),
	}
}

// Snapshot returns the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers fn to run after every session change. Callbacks
// run on the mutating goroutine, outside the store's lock.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// IsAuthenticated is derived from the snapshot, never cached.
func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().User != nil
}

// HasRole reports whether the current user holds any of the given roles.
func (s *Store) HasRole(roles ...Role) bool {
	return slices.Contains(roles, s.Snapshot().Role())
}

// Initialize exchanges a persisted token for a profile. It runs at most
// once per process; whatever happens, it ends with Loading=false.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		log := logger.FromCtx(ctx).With(
			zap.String("store", "Session"),
			zap.String("method", "Initialize"),
		)

		tok, err := s.tokens.Load()
		if err != nil {
			log.Warn("failed to load persisted token", zap.Error(err))
			s.set(Session{})
			return
		}

		if tok == "" {
			s.set(Session{})
			return
		}

		if tokenExpired(tok) {
			log.Info("persisted token expired, discarding")
			_ = s.tokens.Clear()
			s.set(Session{})
			return
		}

		user, err := s.repo.Profile(ctx)
		if err != nil {
			log.Warn("profile fetch failed, discarding token", zap.Error(err))
			_ = s.tokens.Clear()
			s.set(Session{})
			return
		}

		log.Info("session restored", zap.String("user_id", user.ID))
		s.set(Session{User: user})
	})
}

// Login authenticates against the backend. All failures come back as an
// error-shaped AuthResult; this never returns a Go error.
func (s *Store) Login(ctx context.Context, email, password string) AuthResult {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Session"),
		zap.String("method", "Login"),
	)

	cred, err := s.repo.Login(ctx, email, password)
	if err != nil {
		log.Warn("login rejected", zap.Error(err))
		return AuthResult{Err: backend.Message(err, genericAuthError)}
	}

	return s.establish(log, cred)
}

// Register creates an account and signs the new user in.
func (s *Store) Register(ctx context.Context, input RegisterInput) AuthResult {
	log := logger.FromCtx(ctx).With(
		zap.String("store", "Session"),
		zap.String("method", "Register"),
	)

	if err := s.validate.Struct(input); err != nil {
		return AuthResult{Err: "a name, a valid email and a password of at least 8 characters are required"}
	}

	cred, err := s.repo.Register(ctx, input)
	if err != nil {
		log.Warn("registration rejected", zap.Error(err))
		return AuthResult{Err: backend.Message(err, genericAuthError)}
	}

	return s.establish(log, cred)
}

func (s *Store) establish(log *zap.Logger, cred *Credentials) AuthResult {
	if cred == nil || cred.User == nil || cred.Token == "" {
		log.Error("backend returned an incomplete credential payload")
		return AuthResult{Err: genericAuthError}
	}

	if err := s.tokens.Save(cred.Token); err != nil {
		// The in-memory session still works; only persistence is lost.
		log.Warn("failed to persist token", zap.Error(err))
	}

	s.set(Session{User: cred.User})
	log.Info("session established", zap.String("user_id", cred.User.ID))

	return AuthResult{Success: true, User: cred.User}
}

// Logout clears the session synchronously. Best effort, no network.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		logger.L().Warn("failed to clear persisted token", zap.Error(err))
	}
	s.set(Session{})
}

func (s *Store) set(session Session) {
	s.mu.Lock()
	s.session = session
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
}
