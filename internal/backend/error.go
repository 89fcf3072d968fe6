package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated marks a 401 from the backend. Call sites decide how
// to react (typically by sending the user back to login).
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// Message extracts the server-provided reason from err, falling back to
// the given generic message. Used wherever a rejection is shown verbatim.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
