package fleetapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDataUnavailable is returned when the upstream service cannot provide a
// complete data set.
var ErrDataUnavailable = errors.New("fleet data unavailable")

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Path, e.Code)
}

// temporary reports whether a retry may succeed.
func (e *StatusError) temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.temporary()
	}
	var de *decodeError
	return !errors.As(err, &de)
}

type decodeError struct {
	path string
	err  error
}

func (e *decodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.path, e.err) }
func (e *decodeError) Unwrap() error { return e.err }
