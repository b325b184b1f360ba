package apiclient

import (
	"errors"
	"fmt"
)

// BackendError is a non-2xx response carrying a structured {detail|message}
// payload. The message is surfaced to the user verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// NetworkError is a transport failure or a non-2xx response without a
// parseable body.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend request %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsBackendError unwraps err into a BackendError when possible.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
