package token

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Store holds the persisted credential token. It is the only durable
// client-side state; an empty token means no credential is stored.
type Store interface {
	// Token returns the current token without touching the error path,
	// for call sites that attach it to outgoing requests.
	Token() string

	Load() (string, error)
	Save(tok string) error
	Clear() error
}

type fileStore struct {
	path string

	mu     sync.RWMutex
	cached string
	loaded bool
}

// NewFileStore persists the token to a single file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Token() string {
	tok, _ := s.Load()
	return tok
}

func (s *fileStore) Load() (string, error) {
	s.mu.RLock()
	if s.loaded {
		tok := s.cached
		s.mu.RUnlock()
		return tok, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	s.cached = strings.TrimSpace(string(data))
	s.loaded = true
	return s.cached, nil
}

func (s *fileStore) Save(tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(tok), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	s.cached = tok
	s.loaded = true
	return nil
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = ""
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
