package helius

import "fmt"

// ErrorKind classifies a failed Helius call. The API layer maps every kind
// to HTTP 502 — the distinction exists for messages and tests.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindNetwork     ErrorKind = "network"
	KindRateLimited ErrorKind = "rate_limited"
	KindBadRequest  ErrorKind = "bad_request"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden   ErrorKind = "forbidden"
	KindUpstream    ErrorKind = "upstream"
	KindBadShape    ErrorKind = "bad_shape"
)

type APIError struct {
	Kind   ErrorKind
	Status int    // upstream HTTP status, 0 when no response was received
	Msg    string
}

func (e *APIError) Error() string {
	return e.Msg
}

func apiErr(kind ErrorKind, status int, format string, args ...interface{}) *APIError {
	return &APIError{Kind: kind, Status: status, Msg: fmt.Sprintf(format, args...)}
}
