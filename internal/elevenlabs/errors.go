package elevenlabs

import (
	"errors"
	"fmt"
)

// ErrAudioTooLarge is wrapped in a DecodeError when the synthesized audio
// exceeds the client's size limit.
var ErrAudioTooLarge = errors.New("elevenlabs: audio response too large")

// APIError is returned when the API answers with a non-200 status.
// Body is the raw response body, which the functions pass through.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("elevenlabs: status %d: %s", e.StatusCode, e.Body)
}

// RequestError is returned when the API could not be reached or the response
// could not be read (connection refused, timeout, reset).
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError is returned when a successful response is not the expected JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }
