package wirehttp

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Code is an error code that mirrors the http status codes. Protocol
// failures carry one so the serve loop can convert them into a response
// structurally instead of matching on message text.
type Code int

const (
	CodeUnknown                     Code = 0
	CodeBadRequest                  Code = 400 // RFC 9110, 15.5.1
	CodeNotFound                    Code = 404 // RFC 9110, 15.5.5
	CodeMethodNotAllowed            Code = 405 // RFC 9110, 15.5.6
	CodeRequestTimeout              Code = 408 // RFC 9110, 15.5.9
	CodeLengthRequired              Code = 411 // RFC 9110, 15.5.12
	CodeRequestEntityTooLarge       Code = 413 // RFC 9110, 15.5.14
	CodeRequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	CodeInternalServerError Code = 500 // RFC 9110, 15.6.1
	CodeNotImplemented      Code = 501 // RFC 9110, 15.6.2
	CodeServiceUnavailable  Code = 503 // RFC 9110, 15.6.4
)

func statusText(c Code) string {
	switch c {
	case CodeBadRequest:
		return "Bad Request"
	case CodeNotFound:
		return "Not Found"
	case CodeMethodNotAllowed:
		return "Method Not Allowed"
	case CodeRequestTimeout:
		return "Request Timeout"
	case CodeLengthRequired:
		return "Length Required"
	case CodeRequestEntityTooLarge:
		return "Content Too Large"
	case CodeRequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case CodeInternalServerError:
		return "Internal Server Error"
	case CodeNotImplemented:
		return "Not Implemented"
	case CodeServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Unknown"
	}
}

// Error describes a wire-level http error.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

// Errorf is shorthand for NewError with a formatted message.
func Errorf(c Code, format string, args ...any) *Error {
	return &Error{c, errors.Newf(format, args...)}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", statusText(e.code), e.err.Error())
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if wireErr, ok := asError(err); ok {
		return wireErr.Code()
	}
	return CodeUnknown
}

// asError uses errors.As to unwrap any error and look for a wirehttp *Error.
func asError(err error) (*Error, bool) {
	var wireErr *Error
	ok := errors.As(err, &wireErr)
	return wireErr, ok
}
