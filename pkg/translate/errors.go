package translate

import (
	"errors"
	"fmt"

	"github.com/dasmlab/polyglot/pkg/language"
)

var (
	// ErrInvalidArgument reports bad caller input: blank or oversized text,
	// an unknown target language or a malformed API key.
	ErrInvalidArgument = language.ErrInvalidArgument

	// ErrNilArgument reports a required argument that was not supplied.
	ErrNilArgument = errors.New("required argument missing")

	// ErrDisposed is returned by every call made after Dispose.
	ErrDisposed = errors.New("translator has been disposed")

	// ErrUnexpectedPayload means a 200 response did not have the expected
	// shape, which points at a change in the remote API.
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)

// RequestError reports a request that could not be built or sent.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// ConnectionError reports a network failure while reaching the service.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ResponseError reports a response that was received but is unusable: a
// non-OK status, an empty or oversized body, or a failed read.
// StatusCode and Reason are those of the HTTP status line.
type ResponseError struct {
	Message    string
	StatusCode int
	Reason     string
	Err        error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s;  status code: [%d], reason: [%s]", e.Message, e.StatusCode, e.Reason)
}

func (e *ResponseError) Unwrap() error { return e.Err }

func newResponseError(statusCode int, reason string, err error, format string, args ...interface{}) *ResponseError {
	return &ResponseError{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
		Reason:     reason,
		Err:        err,
	}
}

// errorKind labels err for metrics and logs.
func errorKind(err error) string {
	var (
		reqErr  *RequestError
		connErr *ConnectionError
		respErr *ResponseError
	)
	switch {
	case errors.As(err, &reqErr):
		return "request"
	case errors.As(err, &connErr):
		return "connection"
	case errors.As(err, &respErr):
		return "response"
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrNilArgument):
		return "argument"
	case errors.Is(err, ErrDisposed):
		return "disposed"
	case errors.Is(err, ErrUnexpectedPayload):
		return "payload"
	default:
		return "other"
	}
}
