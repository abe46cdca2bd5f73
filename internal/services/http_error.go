package services

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx HTTP response. The submission pipeline
// branches on the code: 429 is retried with backoff, 404 on file selection
// means the item is not yet visible.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// IsStatus reports whether err wraps a [StatusError] with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
