package domain

import "errors"

// Generation failure sentinels. Transport-level failures are not a sentinel:
// anything that is neither ErrAPIRejected nor ErrMalformedResponse counts as
// a network failure.
var (
	// ErrAPIRejected means the API answered with status=false.
	ErrAPIRejected = errors.New("generation rejected by API")

	// ErrMalformedResponse means the API answered but the body was not the
	// expected {status, data.url} envelope.
	ErrMalformedResponse = errors.New("malformed generation response")
)

// ErrorKind is the closed classification of generation failures. It is used
// for structured logs and the history table, never shown to chat users.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindAPIRejected       ErrorKind = "api_rejected"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindNetworkFailure    ErrorKind = "network_failure"
)

// Kind classifies a generation error.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAPIRejected):
		return KindAPIRejected
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	}
	return KindNetworkFailure
}
