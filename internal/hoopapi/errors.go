package hoopapi

import "fmt"

// ErrorKind classifies a failure for callers that need to branch. Display
// code should only ever need Message; the kind exists so validation errors
// can be told apart from failures that arrive after I/O started.
type ErrorKind string

const (
	// KindValidation is a bad input caught before any network call.
	KindValidation ErrorKind = "validation"
	// KindTransport is a network failure, timeout, or 5xx response.
	KindTransport ErrorKind = "transport"
	// KindBusiness is a 4xx rejection carrying a backend message.
	KindBusiness ErrorKind = "business"
	// KindProtocol is a malformed or unexpected response shape.
	KindProtocol ErrorKind = "protocol"
	// KindJobFailed is a backend-reported terminal processing failure.
	KindJobFailed ErrorKind = "job_failed"
)

// Error is the uniform failure type surfaced by the transport layer and the
// tracker. Status is the HTTP status code when one was received.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func newProtocolError(format string, args ...any) *Error {
	return &Error{Kind: KindProtocol, Message: fmt.Sprintf(format, args...)}
}

func newTransportError(status int, format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Status: status, Message: fmt.Sprintf(format, args...)}
}
