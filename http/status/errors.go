package status

import "fmt"

type HTTPError struct {
	Message string
	Code    Code
	// Kind is the broader error this one is a case of, if any.
	Kind error
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

func (h HTTPError) Unwrap() error {
	return h.Kind
}

// kindOf derives a more specific error from a kind sentinel. errors.Is matches both.
func kindOf(kind error, detail string) error {
	return fmt.Errorf("%w: %s", kind, detail)
}

// error kinds
var (
	ErrMalformedHead    = NewError(BadRequest, "malformed head")
	ErrBadMessage       = NewError(BadRequest, "bad message")
	ErrLengthMismatch   = NewError(InternalServerError, "body length differs from the declared one")
	ErrConnectionClosed = NewError(CloseConnection, "connection closed before a complete line")
	ErrUnexpectedEOF    = NewError(CloseConnection, "connection closed before a complete body")
)

var (
	ErrMalformedHeader   = kindOf(ErrMalformedHead, "malformed header field line")
	ErrLineTooLong       = kindOf(ErrMalformedHead, "line is too long")
	ErrTooManyHeaders    = HTTPError{Message: "too many header fields", Code: RequestHeaderFieldsTooLarge, Kind: ErrMalformedHead}
	ErrConflictingLength = kindOf(ErrBadMessage, "both transfer-encoding and content-length are set, smuggling risk")
	ErrBadContentLength  = kindOf(ErrBadMessage, "invalid content length")
	ErrUnchunkedRequest  = kindOf(ErrBadMessage, "request transfer-encoding must end with chunked")
	ErrBadChunk          = kindOf(ErrBadMessage, "malformed chunk-encoded data")
	ErrBodyTooLarge      = NewError(RequestEntityTooLarge, "body is too large")
	ErrHijacked          = NewError(CloseConnection, "connection was hijacked")
)
