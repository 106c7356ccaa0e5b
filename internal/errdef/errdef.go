// Package errdef provides coded errors shared across curlparse packages.
package errdef

import (
	"errors"
	"fmt"
	"strings"
)

type Code string

const (
	CodeUnknown    Code = "unknown"
	CodeParse      Code = "parse"
	CodeFilesystem Code = "filesystem"
	CodeHistory    Code = "history"
	CodeConfig     Code = "config"
	CodeRender     Code = "render"
	CodeTelemetry  Code = "telemetry"
)

type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code Code, format string, args ...any) error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message. A nil err yields nil.
func Wrap(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the outermost code attached to err.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return CodeUnknown
}

// Message returns err's text without surrounding whitespace.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
