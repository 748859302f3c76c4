package domain

import "errors"

// Fixed messages produced by the HTTP client when no server message exists.
const (
	MsgNetworkError  = "Network error - please check your connection"
	MsgRequestFailed = "Request failed"
)

var (
	// ErrNoCredential is returned by token stores when no token is held.
	ErrNoCredential = errors.New("no credential stored")
	// ErrInvalidLoginResponse is returned when a login succeeds at the
	// transport level but carries no token.
	ErrInvalidLoginResponse = errors.New("Invalid login response")
)

// ErrorKind classifies a normalized API error.
type ErrorKind string

const (
	// KindRequest: the request could not be built or sent.
	KindRequest ErrorKind = "request"
	// KindNetwork: the request was sent but no response came back.
	KindNetwork ErrorKind = "network"
	// KindServer: the server answered with a non-2xx status.
	KindServer ErrorKind = "server"
	// KindUnauthorized: the server answered 401 and the credential was dropped.
	KindUnauthorized ErrorKind = "unauthorized"
)

// APIError is the single error shape that leaves the HTTP client. Its
// Error() text is exactly Message.
type APIError struct {
	Message string
	Kind    ErrorKind
	// Status is the HTTP status when a response was received, 0 otherwise.
	Status int
}

func (e *APIError) Error() string { return e.Message }

// Unauthorized reports whether the error signalled an expired or invalid
// credential.
func (e *APIError) Unauthorized() bool { return e.Kind == KindUnauthorized }

// NewRequestError wraps a client-side construction failure. An empty cause
// message falls back to MsgRequestFailed.
func NewRequestError(cause error) *APIError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if msg == "" {
		msg = MsgRequestFailed
	}
	return &APIError{Message: msg, Kind: KindRequest}
}

// ErrorMessage returns the user-facing message for any error, preferring the
// normalized message when err is (or wraps) an *APIError.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgRequestFailed
}
