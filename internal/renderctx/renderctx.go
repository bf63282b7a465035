// Package renderctx stamps every render request with a correlation ID
// so a single request's log lines can be told apart from a concurrent
// one.
package renderctx

import "github.com/google/uuid"

// RequestID is a short correlation ID for a single render request's
// log lines.
type RequestID string

// NewRequestID mints a new correlation ID.
func NewRequestID() RequestID {
	return RequestID(uuid.NewString()[:8])
}

// Tag formats id as a bracketed log-line prefix, e.g. "[a1b2c3d4]".
func (id RequestID) Tag() string {
	return "[" + string(id) + "]"
}
