package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: the backend could not be
// reached, or its response could not be decoded. Callers match it with
// errors.Is and present a generic connectivity message.
var ErrUnavailable = errors.New("backend unavailable")

// BackendError carries a failure the backend reported itself (non-2xx
// status). Message is taken from the body's "error" field when present.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: status %d", e.Status)
	}
	return fmt.Sprintf("backend error: %s (status %d)", e.Message, e.Status)
}
