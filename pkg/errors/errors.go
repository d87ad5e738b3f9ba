package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	// CodeType marks a programmer error: an argument is not the record or
	// handle the operation expects. Business logic never catches these.
	CodeType Code = "TYPE_ERROR"
	// CodeValue marks a business-rule violation: negative amount, insufficient
	// balance, out-of-stock, malformed payment instrument.
	CodeValue Code = "VALUE_ERROR"
	// CodeNotFound marks a lookup that expected a record and found none.
	// Lookups where absence is a normal outcome return (zero, false) instead.
	CodeNotFound Code = "NOT_FOUND"
	// CodeDependency marks a failure inside an external collaborator such as
	// the SQL persistence adapter.
	CodeDependency Code = "DEPENDENCY_ERROR"
)

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeValue
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}
