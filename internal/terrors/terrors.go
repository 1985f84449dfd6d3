// Package terrors is this toolkit's wrapped-error idiom: every constructed
// error carries both a short operator-facing Detail and a more technical
// Error() string, and can wrap an underlying sentinel so callers can still
// errors.Is/errors.As through it.
package terrors

import "fmt"

// toolkitError is an error produced by grammar or automaton construction or
// validation. Detail is meant for a human reading the toolkit's output;
// Error() is the usual Go-idiom message; Unwrap exposes the sentinel (if
// any) it was built from.
type toolkitError struct {
	msg    string
	detail string
	wrap   error
}

func (e *toolkitError) Error() string {
	return e.msg
}

// Detail returns the human-facing description of the error.
func (e *toolkitError) Detail() string {
	return e.detail
}

// Unwrap gives the error toolkitError wraps, if any.
func (e *toolkitError) Unwrap() error {
	return e.wrap
}

// New returns an error with a human-facing detail and, optionally, a
// distinct technical Error() string. If technical is empty, one is
// generated from detail.
func New(detail, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got ToolkitError(%q)", detail)
	}
	return &toolkitError{msg: technical, detail: detail}
}

// Newf is New with the detail built via fmt.Sprintf.
func Newf(detailFormat string, a ...interface{}) error {
	return New(fmt.Sprintf(detailFormat, a...), "")
}

// Wrap is New, additionally wrapping e so errors.Is/errors.As can reach it.
func Wrap(e error, detail, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got ToolkitError(%q)", detail)
	}
	return &toolkitError{msg: technical, detail: detail, wrap: e}
}

// Wrapf is Wrap with the detail built via fmt.Sprintf.
func Wrapf(e error, detailFormat string, a ...interface{}) error {
	return Wrap(e, fmt.Sprintf(detailFormat, a...), "")
}

// Detail returns err's human-facing description if it is one of this
// package's errors, or err.Error() otherwise.
func Detail(err error) string {
	if te, ok := err.(*toolkitError); ok {
		return te.Detail()
	}
	return err.Error()
}
