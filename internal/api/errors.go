package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the ScopeFlow server could not be reached.
	ErrUnavailable = errors.New("scopeflow server unavailable")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("request timed out")
)

// Error is a non-2xx application error. Message carries the server-supplied
// reason from the {"error": ...} body when present, otherwise a generic
// "HTTP <status>" string.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports whether err is an application error with status 404.
func NotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

func genericMessage(status int) string {
	return fmt.Sprintf("HTTP %d", status)
}
