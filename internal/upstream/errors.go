package upstream

import (
	"errors"
	"fmt"
)

// StatusError is returned when the upstream answers with a non-2xx status.
// Body holds the raw response text for display.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsStatus reports whether err is, or wraps, a *StatusError.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// StatusBody returns the raw upstream body carried by err, if any.
func StatusBody(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body, true
	}
	return "", false
}
