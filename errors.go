package apimanager

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies request errors.
type Kind int

const (
	// KindNoResponse means no connectivity or no response object.
	KindNoResponse Kind = iota
	// KindInvalidURL means the endpoint has no resolvable URL.
	KindInvalidURL
	// KindStatusNotOK means the transport call failed, or decoding failed for
	// a reason other than the payload itself.
	KindStatusNotOK
	// KindDecoding means a 2xx body could not be decoded into the target.
	KindDecoding
	// KindUnexpectedStatusCode means the status was outside 2xx and 4xx.
	KindUnexpectedStatusCode
	// KindUnknown means a 4xx status. The raw body is kept for inspection.
	KindUnknown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNoResponse:
		return "no_response"
	case KindInvalidURL:
		return "invalid_url"
	case KindStatusNotOK:
		return "status_not_ok"
	case KindDecoding:
		return "decoding"
	case KindUnexpectedStatusCode:
		return "unexpected_status_code"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the error returned by every request operation.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Body is the raw response body, set for KindUnknown.
	Body []byte
	// Err is the underlying error.
	Err error
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrNoResponse           = &Error{Kind: KindNoResponse}
	ErrInvalidURL           = &Error{Kind: KindInvalidURL}
	ErrStatusNotOK          = &Error{Kind: KindStatusNotOK}
	ErrDecoding             = &Error{Kind: KindDecoding}
	ErrUnexpectedStatusCode = &Error{Kind: KindUnexpectedStatusCode}
	ErrUnknown              = &Error{Kind: KindUnknown}
)

func newError(kind Kind, statusCode int, body []byte, err error) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Body: body, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "apimanager: " + e.Kind.String()
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// HTTPStatus maps the error to the status a service should answer with when
// it surfaces this error to its own callers: 400 for NoResponse, 403 otherwise.
func (e *Error) HTTPStatus() int {
	if e.Kind == KindNoResponse {
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}

// KindOf returns the Kind of the *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

func isKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// IsNoResponse checks if an error is a no-response error.
func IsNoResponse(err error) bool { return isKind(err, KindNoResponse) }

// IsInvalidURL checks if an error is an invalid-URL error.
func IsInvalidURL(err error) bool { return isKind(err, KindInvalidURL) }

// IsStatusNotOK checks if an error is a status-not-ok error.
func IsStatusNotOK(err error) bool { return isKind(err, KindStatusNotOK) }

// IsDecoding checks if an error is a decoding error.
func IsDecoding(err error) bool { return isKind(err, KindDecoding) }

// IsUnexpectedStatusCode checks if an error is an unexpected-status error.
func IsUnexpectedStatusCode(err error) bool { return isKind(err, KindUnexpectedStatusCode) }

// IsUnknown checks if an error is a 4xx error.
func IsUnknown(err error) bool { return isKind(err, KindUnknown) }

// UnknownBody returns the raw 4xx response body carried by err.
func UnknownBody(err error) ([]byte, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindUnknown {
		return nil, false
	}
	return e.Body, true
}
