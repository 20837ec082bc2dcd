package specstitch

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are mapped onto the crawl's failure taxonomy: a 404-equivalent is
// ENOTFOUND, any other failed fetch is EUNAVAILABLE, a page whose HTML lacks
// the embedded props payload is EEXTRACT, and a recovered payload that still
// lacks the definition fragment is EINCOMPLETE.
const (
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
	EEXTRACT     = "extract"
	EINCOMPLETE  = "incomplete"
	EINTERNAL    = "internal"
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("specstitch error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL. A nil error returns an empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Otherwise returns a generic message. A nil error returns an empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
