package linkapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthenticated covers 401/403 responses: the session token is
	// absent, expired or rejected. Callers clear the token slot on it.
	ErrUnauthenticated = errors.New("no autenticado")

	// ErrNotFound covers 404 responses on resource lookups.
	ErrNotFound = errors.New("recurso no encontrado")
)

// APIError is a non-2xx backend response normalized to a display message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.StatusCode)
}

// parseErrorBody extracts the backend's error message. The backend emits
// {"message": "..."} or {"message": ["...", ...]}; anything else falls back
// to a generic message.
func parseErrorBody(body []byte, fallback string) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return fallback
	}

	var msg string
	if err := json.Unmarshal(payload.Message, &msg); err == nil && msg != "" {
		return msg
	}
	var msgs []string
	if err := json.Unmarshal(payload.Message, &msgs); err == nil && len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return fallback
}
