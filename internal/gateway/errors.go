package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a rejected or missing credential (401/403, or no token
// available for an authenticated call).
var ErrUnauthorized = errors.New("unauthorized")

// Error describes a failed API call. StatusCode is 0 for transport failures.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ServerMessage returns the message the API attached to a failure, if any.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsUnauthorized reports whether err means the session is not (or no longer) valid.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
