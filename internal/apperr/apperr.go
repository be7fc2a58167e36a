// Package apperr defines the error kinds shared across matchlog.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrStorage    = errors.New("storage error")
	ErrParse      = errors.New("parse error")
	ErrValidation = errors.New("validation error")
)

// Error carries an error kind together with the failing operation and cause.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Storage(op string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Err: err}
}

func Parse(op, format string, args ...any) error {
	return &Error{Kind: ErrParse, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func ParseWrap(op string, err error) error {
	return &Error{Kind: ErrParse, Op: op, Err: err}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}
