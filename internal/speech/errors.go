package speech

import (
	"errors"
	"fmt"
)

// Messages shown to the user. They do not depend on the underlying cause.
const (
	MsgEmptyKeywords = "Please enter some keywords first."
	MsgNetwork       = "Failed to connect to backend."
)

var (
	// ErrInFlight is returned when a submission arrives while another
	// request is still loading.
	ErrInFlight = errors.New("speech: a request is already in flight")

	// ErrBodyConsumed is returned on any read after the first.
	ErrBodyConsumed = errors.New("speech: response body already consumed")
)

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ServerError reports a non-2xx backend response.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Server error: %d", e.Status)
}

// NetworkError reports a transport failure. Err is kept for logging only.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return MsgNetwork }

func (e *NetworkError) Unwrap() error { return e.Err }
